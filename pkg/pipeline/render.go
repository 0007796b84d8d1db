package pipeline

import (
	"github.com/matzehuels/autogrid/pkg/sink"
)

// RenderFormat renders one format of l.
func RenderFormat(l sink.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return sink.RenderJSON(l)
	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.NoLabels {
			svgOpts = append(svgOpts, sink.WithoutLabels())
		}
		if opts.Guides {
			svgOpts = append(svgOpts, sink.WithColumnGuides())
		}
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatText:
		return []byte(sink.RenderText(l, sink.TextOptions{Color: opts.Color, Header: true}) + "\n"), nil
	}
	return nil, ValidateFormat(format)
}

// RenderAll renders every format in opts.Formats.
func RenderAll(l sink.Layout, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		data, err := RenderFormat(l, f, opts)
		if err != nil {
			return nil, err
		}
		out[f] = data
	}
	return out, nil
}
