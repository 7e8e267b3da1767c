package recipients

import (
	"fmt"
	"slices"
	"strings"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"gopkg.in/ini.v1"
)

var defaults = map[domain.ReportKind][]string{
	domain.ReportKindWeekly:  {"erin@clocksynk.com", "jared@clocksynk.com", "bill@clocksynk.com"},
	domain.ReportKindMonthly: {"erin@clocksynk.com", "board@clocksynk.com"},
}

// Registry resolves who receives each report kind.
type Registry interface {
	Recipients(kind domain.ReportKind) []string
}

type registry struct {
	lists map[domain.ReportKind][]string
}

func Defaults() Registry {
	return &registry{lists: defaults}
}

// Load reads an ini file with one section per report kind:
//
//	[weekly]
//	to = erin@clocksynk.com, jared@clocksynk.com
//
// Kinds without a section keep the default list.
func Load(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipients file: %w", err)
	}

	lists := make(map[domain.ReportKind][]string, len(defaults))
	for kind, list := range defaults {
		lists[kind] = list
	}

	for _, section := range cfg.Sections() {
		if !section.HasKey("to") {
			continue
		}
		kind, ok := domain.ParseReportKind(section.Name())
		if !ok {
			return nil, fmt.Errorf("unknown report kind %q in recipients file", section.Name())
		}

		var to []string
		for _, addr := range section.Key("to").Strings(",") {
			addr = strings.TrimSpace(addr)
			if addr == "" {
				continue
			}
			if !strings.Contains(addr, "@") {
				return nil, fmt.Errorf("invalid address %q for %s report", addr, kind)
			}
			to = append(to, addr)
		}
		lists[kind] = to
	}

	return &registry{lists: lists}, nil
}

// Recipients returns a copy so callers cannot alter the registry.
func (r *registry) Recipients(kind domain.ReportKind) []string {
	return slices.Clone(r.lists[kind])
}
