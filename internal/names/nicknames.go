package names

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultNicknames maps a given name to its common short forms.
var defaultNicknames = map[string][]string{
	"william":   {"bill", "billy", "will", "willie", "wm"},
	"robert":    {"bob", "bobby", "rob", "robt"},
	"richard":   {"dick", "rick", "richie"},
	"james":     {"jim", "jimmy", "jas"},
	"john":      {"jack", "johnny", "jno"},
	"joseph":    {"joe", "jos"},
	"charles":   {"charlie", "chas", "chuck"},
	"thomas":    {"tom", "tommy", "thos"},
	"edward":    {"ed", "eddie", "ted", "edw"},
	"benjamin":  {"ben", "benj"},
	"samuel":    {"sam", "saml"},
	"george":    {"geo"},
	"henry":     {"hank", "harry"},
	"margaret":  {"maggie", "peggy", "meg"},
	"elizabeth": {"liz", "beth", "betty", "eliza"},
	"katherine": {"kate", "kathy", "katie"},
	"catherine": {"cathy", "kate"},
	"mary":      {"polly", "molly", "mae"},
	"patricia":  {"pat", "patty", "trish"},
	"dorothy":   {"dot", "dottie"},
	"frances":   {"fran", "fannie"},
	"alexander": {"alex", "al"},
	"michael":   {"mike", "mick"},
	"daniel":    {"dan", "danny"},
	"david":     {"dave"},
	"anthony":   {"tony"},
	"frederick": {"fred", "freddie"},
	"lawrence":  {"larry"},
	"nathaniel": {"nate", "nat"},
	"steven":    {"steve"},
	"stephen":   {"steve"},
}

// table is a symmetric equivalence lookup built from a nickname map.
type table map[string]map[string]struct{}

func buildTable(sources ...map[string][]string) table {
	t := table{}
	link := func(a, b string) {
		if t[a] == nil {
			t[a] = map[string]struct{}{}
		}
		t[a][b] = struct{}{}
	}
	for _, src := range sources {
		for given, shorts := range src {
			given = strings.ToLower(strings.TrimSpace(given))
			for _, s := range shorts {
				s = strings.ToLower(strings.TrimSpace(s))
				if s == "" || s == given {
					continue
				}
				link(given, s)
				link(s, given)
			}
		}
	}
	return t
}

func (t table) equivalents(token string) []string {
	var out []string
	for e := range t[token] {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// LoadNicknames reads an additional nickname table from a YAML file of the form
//
//	william: [bill, billy]
//	margaret: [peggy]
func LoadNicknames(path string) (map[string][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("names.LoadNicknames: %w", err)
	}
	out := map[string][]string{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("names.LoadNicknames: parsing %s: %w", path, err)
	}
	return out, nil
}
