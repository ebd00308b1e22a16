package orchestration

import (
	"strings"

	"github.com/arthur-debert/apishape/internal/version"
	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/arthur-debert/apishape/pkg/syntax"
	"github.com/arthur-debert/apishape/pkg/writers"
	"github.com/spf13/afero"
)

const headerTemplate = `//------------------------------------------------------------------------------
// <auto-generated>
//     This code was generated by a tool.
//     {tool} Version: {version}
//
//     Changes to this file may cause incorrect behavior and will be lost if
//     the code is regenerated.
// </auto-generated>
//------------------------------------------------------------------------------
`

// DefaultHeader returns the auto-generated notice for this build.
func DefaultHeader() string {
	return strings.NewReplacer("{tool}", version.ToolName, "{version}", version.Version).
		Replace(headerTemplate)
}

// ResolveHeader returns the text written first in every stream. A header
// file is used verbatim. Without one, text declarations and type forward
// lists get the default notice and everything else gets none.
func ResolveHeader(fs afero.Fs, headerFile string, kind writers.Kind, style syntax.Style) (string, error) {
	if headerFile != "" {
		data, err := afero.ReadFile(fs, headerFile)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigInvalid, "read header file %s", headerFile).
				WithDetail("path", headerFile)
		}
		return string(data), nil
	}
	kind = kind.Resolve()
	if (kind == writers.Declarations || kind == writers.TypeForwardList) && style == syntax.Text {
		return DefaultHeader(), nil
	}
	return "", nil
}
