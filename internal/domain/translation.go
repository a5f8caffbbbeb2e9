package domain

// ConfigMissingSentinel is the translation text the server sends when no
// translation provider is configured. It never leaves the gateway layer as
// a translation.
const ConfigMissingSentinel = "请先设置有道翻译API密钥"

// TranslationKind tags a translate result
type TranslationKind int

const (
	// TranslationOK carries a real translation
	TranslationOK TranslationKind = iota
	// TranslationConfigMissing means the provider is not configured
	TranslationConfigMissing
)

// Translation is the result of a translate call
type Translation struct {
	Kind TranslationKind
	Word string
	Text string
	// Status is the stored status, empty when the store did not report one
	Status Status
}

// ConfigMissing reports whether the provider is unconfigured
func (t Translation) ConfigMissing() bool {
	return t.Kind == TranslationConfigMissing
}
