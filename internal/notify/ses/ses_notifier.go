package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"runsheet/internal/domain"
	"runsheet/internal/port"
)

// EmailClient is the subset of the SES v2 client the notifier uses.
type EmailClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesNotifier struct {
	client      EmailClient
	fromAddress string
	fromName    string
	recipients  []string
}

// NewSESNotifier creates a CompletionNotifier that e-mails the ownership summary to recipients.
func NewSESNotifier(region, fromAddress, fromName string, recipients []string) (port.CompletionNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return NewWithClient(sesv2.NewFromConfig(cfg), fromAddress, fromName, recipients), nil
}

// NewWithClient creates a notifier around an existing SES client.
func NewWithClient(client EmailClient, fromAddress, fromName string, recipients []string) port.CompletionNotifier {
	return &sesNotifier{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		recipients:  recipients,
	}
}

func (s *sesNotifier) OnComplete(ctx context.Context, summary *domain.OwnershipSummary) error {
	if len(s.recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Runsheet complete: %s", prospectName(summary))
	htmlBody := buildSummaryHTML(summary)
	textBody := BuildSummaryText(summary)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: s.recipients,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func prospectName(summary *domain.OwnershipSummary) string {
	if summary.Prospect != "" {
		return summary.Prospect
	}
	return summary.SessionID.String()
}

// BuildSummaryText renders the plain-text body of the completion e-mail.
func BuildSummaryText(summary *domain.OwnershipSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ownership summary for %s (%.2f acres)\n\n", prospectName(summary), summary.TotalAcres)
	for _, o := range summary.Owners {
		fmt.Fprintf(&b, "%s: surface %.4f%% (%.4f ac), mineral %.4f%% (%.4f ac), lease %s\n",
			o.Name, o.SurfacePercentage, o.NetSurfaceAcres, o.MineralPercentage, o.NetMineralAcres, o.CurrentLeaseStatus)
	}
	fmt.Fprintf(&b, "\nTotals: surface %.4f%%, mineral %.4f%%\n", summary.TotalSurfacePercentage, summary.TotalMineralPercentage)
	if len(summary.UnresolvedTransfers) > 0 {
		fmt.Fprintf(&b, "\nUnresolved transfers (%d):\n", len(summary.UnresolvedTransfers))
		for _, p := range summary.UnresolvedTransfers {
			fmt.Fprintf(&b, "%s -> %s (%s, row %d)\n", p.GrantorName, p.GranteeName, p.DocumentReference, p.RowIndex)
		}
	}
	return b.String()
}

func buildSummaryHTML(summary *domain.OwnershipSummary) string {
	var rows strings.Builder
	for _, o := range summary.Owners {
		fmt.Fprintf(&rows, `    <tr><td>%s</td><td>%.4f%%</td><td>%.4f</td><td>%.4f%%</td><td>%.4f</td><td>%s</td></tr>
`, html.EscapeString(o.Name), o.SurfacePercentage, o.NetSurfaceAcres, o.MineralPercentage, o.NetMineralAcres,
			html.EscapeString(string(o.CurrentLeaseStatus)))
	}

	unresolved := ""
	if n := len(summary.UnresolvedTransfers); n > 0 {
		unresolved = fmt.Sprintf(`  <p style="color: #B45309;">%d transfers could not be resolved. Their grantors never acquired an interest.</p>
`, n)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 700px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Ownership summary: %s</h2>
  <p>%.2f acres, %d of %d rows approved.</p>
  <table style="border-collapse: collapse; width: 100%%;" border="1" cellpadding="6">
    <tr><th>Owner</th><th>Surface</th><th>Net surface ac</th><th>Mineral</th><th>Net mineral ac</th><th>Lease</th></tr>
%s  </table>
  <p>Totals: surface %.4f%%, mineral %.4f%%</p>
%s</body>
</html>`, html.EscapeString(prospectName(summary)), summary.TotalAcres, summary.ApprovedRows, summary.TotalRows,
		rows.String(), summary.TotalSurfacePercentage, summary.TotalMineralPercentage, unresolved)
}
