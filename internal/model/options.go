package model

// OutputFormat selects the encoding of the analysis report.
type OutputFormat string

const (
	// FormatText renders the report as an LLM-oriented text document.
	FormatText OutputFormat = "txt"
	// FormatJSON renders the report as a single JSON document.
	FormatJSON OutputFormat = "json"
)

// outputFormats lists the legal formats in cycling order.
var outputFormats = []OutputFormat{FormatText, FormatJSON}

// Valid reports whether f is a legal output format.
func (f OutputFormat) Valid() bool {
	for _, v := range outputFormats {
		if f == v {
			return true
		}
	}
	return false
}

// Next returns the format following f in cycling order. Unknown values
// cycle back to the first format.
func (f OutputFormat) Next() OutputFormat {
	for i, v := range outputFormats {
		if f == v {
			return outputFormats[(i+1)%len(outputFormats)]
		}
	}
	return outputFormats[0]
}

// Provider identifies the chat service a report may be handed to after
// analysis. ProviderNone disables the handoff.
type Provider string

const (
	ProviderNone    Provider = "none"
	ProviderClaude  Provider = "claude"
	ProviderChatGPT Provider = "chatgpt"
)

// providers lists the legal providers in cycling order.
var providers = []Provider{ProviderNone, ProviderClaude, ProviderChatGPT}

// Valid reports whether p is a legal provider.
func (p Provider) Valid() bool {
	for _, v := range providers {
		if p == v {
			return true
		}
	}
	return false
}

// Next returns the provider following p in cycling order. Unknown
// values cycle back to ProviderNone.
func (p Provider) Next() Provider {
	for i, v := range providers {
		if p == v {
			return providers[(i+1)%len(providers)]
		}
	}
	return providers[0]
}

// Options carries the non-selection session settings. They persist in
// the state side file together with the selection sets.
type Options struct {
	Format          OutputFormat `json:"format"`
	ExportFull      bool         `json:"full"`
	Debug           bool         `json:"debug"`
	ExcludePatterns []string     `json:"excludes,omitempty"`
	Provider        Provider     `json:"provider,omitempty"`
}

// DefaultOptions returns the options used when nothing was persisted.
func DefaultOptions() Options {
	return Options{
		Format:   FormatText,
		Provider: ProviderNone,
	}
}

// Normalize replaces illegal enum values with their defaults. Persisted
// files may carry values written by other tool versions.
func (o Options) Normalize() Options {
	if !o.Format.Valid() {
		o.Format = FormatText
	}
	if !o.Provider.Valid() {
		o.Provider = ProviderNone
	}
	return o
}
