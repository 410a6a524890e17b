package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

// ErrUnsupportedFormat is returned for an output format without a writer.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// reportRow describes one resolved domain type.
type reportRow struct {
	Name               string   `json:"name" yaml:"name"`
	TypeID             string   `json:"typeId" yaml:"typeId"`
	DefaultKind        string   `json:"defaultKind" yaml:"defaultKind"`
	DefaultContentType string   `json:"defaultContentType" yaml:"defaultContentType"`
	NaturalKind        string   `json:"naturalKind,omitempty" yaml:"naturalKind,omitempty"`
	Serializers        []string `json:"serializers" yaml:"serializers"`
}

// newReport builds one row per profile in resolution order.
// Implicit declarations are marked with a trailing asterisk.
func newReport(profiles domaintypes.Profiles) []reportRow {
	rows := make([]reportRow, 0, profiles.Len())

	for _, profile := range profiles.All() {
		serializers := make([]string, 0, len(profile.Declarations))

		for _, declaration := range profile.Declarations {
			kind := declaration.Kind.String()
			if declaration.Implicit {
				kind += "*"
			}

			serializers = append(serializers, kind)
		}

		rows = append(rows, reportRow{
			Name:               profile.Name(),
			TypeID:             profile.TypeID.String(),
			DefaultKind:        profile.DefaultKind().String(),
			DefaultContentType: profile.DefaultContentType(),
			NaturalKind:        profile.NaturalKind.String(),
			Serializers:        serializers,
		})
	}

	return rows
}

// writeReport renders the rows in the requested format.
func writeReport(w io.Writer, format string, rows []reportRow) error {
	switch format {
	case formatTable:
		return writeTable(w, rows)
	case formatJSON:
		encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(rows)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(rows); err != nil {
			return err
		}

		return encoder.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeTable(w io.Writer, rows []reportRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "DOMAIN TYPE\tTYPE ID\tDEFAULT\tCONTENT TYPE\tSERIALIZERS"); err != nil {
		return err
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			row.Name,
			row.TypeID,
			row.DefaultKind,
			row.DefaultContentType,
			strings.Join(row.Serializers, ","),
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}
