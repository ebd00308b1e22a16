package config

import (
	"github.com/arthur-debert/apishape/pkg/docid"
	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/arthur-debert/apishape/pkg/filter"
	"github.com/arthur-debert/apishape/pkg/langversion"
	"github.com/arthur-debert/apishape/pkg/orchestration"
	"github.com/arthur-debert/apishape/pkg/syntax"
	"github.com/arthur-debert/apishape/pkg/writers"
)

// Options mirrors the configuration keys one to one. Keys are the long
// flag names.
type Options struct {
	Inputs  []string `koanf:"inputs"`
	LibPath []string `koanf:"lib-path"`

	APIList               string `koanf:"api-list"`
	ExcludeAPIList        string `koanf:"exclude-api-list"`
	ExcludeMembers        bool   `koanf:"exclude-members"`
	ExcludeAttributesList string `koanf:"exclude-attributes-list"`

	Out        string `koanf:"out"`
	HeaderFile string `koanf:"header-file"`
	Writer     string `koanf:"writer"`
	Syntax     string `koanf:"syntax"`
	DocIDKinds string `koanf:"docid-kinds"`

	ExceptionMessage   string `koanf:"exception-message"`
	Global             bool   `koanf:"global"`
	FollowTypeForwards bool   `koanf:"follow-type-forwards"`
	APIOnly            bool   `koanf:"api-only"`

	All                      bool `koanf:"all"`
	RespectInternals         bool `koanf:"respect-internals"`
	ExcludeCompilerGenerated bool `koanf:"exclude-compiler-generated"`

	MemberHeadings                bool   `koanf:"member-headings"`
	HighlightBaseMembers          bool   `koanf:"highlight-base-members"`
	HighlightInterfaceMembers     bool   `koanf:"highlight-interface-members"`
	AlwaysIncludeBase             bool   `koanf:"always-include-base"`
	ExcludeMembersOnFilteredTypes bool   `koanf:"exclude-members-on-filtered-types"`
	LangVersion                   string `koanf:"lang-version"`
}

// Validate checks option values and combinations and returns the typed
// run options. List sources are not read here; the filter builder does
// that before anything is loaded.
func (o *Options) Validate() (orchestration.Options, error) {
	if len(o.Inputs) == 0 {
		return orchestration.Options{}, errors.New(errors.ErrConfigInvalid, "no input assembly or directory given")
	}

	kind, err := writers.ParseKind(o.Writer)
	if err != nil {
		return orchestration.Options{}, err
	}
	style, err := syntax.ParseStyle(o.Syntax)
	if err != nil {
		return orchestration.Options{}, err
	}
	kinds, err := docid.ParseKinds(o.DocIDKinds)
	if err != nil {
		return orchestration.Options{}, err
	}
	lang, err := langversion.Parse(o.LangVersion)
	if err != nil {
		return orchestration.Options{}, err
	}

	if o.ExcludeMembers && o.ExcludeAPIList == "" {
		return orchestration.Options{}, errors.New(errors.ErrConfigInvalid,
			"exclude-members requires exclude-api-list")
	}
	if o.ExceptionMessage != "" && o.APIOnly {
		return orchestration.Options{}, errors.New(errors.ErrConfigInvalid,
			"exception-message cannot be combined with api-only")
	}

	return orchestration.Options{
		Inputs:     o.Inputs,
		Output:     o.Out,
		HeaderFile: o.HeaderFile,
		Kind:       kind,
		Style:      style,
		Filter: filter.Options{
			IncludeList:              o.APIList,
			ExcludeList:              o.ExcludeAPIList,
			ExcludeMembers:           o.ExcludeMembers,
			ExcludeAttributesList:    o.ExcludeAttributesList,
			All:                      o.All,
			RespectInternals:         o.RespectInternals,
			ExcludeCompilerGenerated: o.ExcludeCompilerGenerated,
		},
		Writer: writers.Options{
			Headings:                      o.MemberHeadings,
			HighlightBaseMembers:          o.HighlightBaseMembers,
			HighlightInterfaceMembers:     o.HighlightInterfaceMembers,
			AlwaysIncludeBase:             o.AlwaysIncludeBase,
			ExcludeMembersOnFilteredTypes: o.ExcludeMembersOnFilteredTypes,
			ExceptionMessage:              o.ExceptionMessage,
			GlobalPrefix:                  o.Global,
			FollowTypeForwards:            o.FollowTypeForwards,
			APIOnly:                       o.APIOnly,
			LangVersion:                   lang,
			DocIDKinds:                    kinds,
		},
	}, nil
}
