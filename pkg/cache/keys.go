package cache

// DefaultKeyer derives keys by hashing the inputs with stable prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key derivation.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) AnalysisKey(datasetHash string) string {
	return hashKey("analysis", datasetHash)
}

func (k *DefaultKeyer) DocumentKey(analysisHash string, opts DocumentKeyOpts) string {
	return hashKey("document", analysisHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", documentHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, isolating cache
// namespaces when several tenants or runs share one backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner so all keys carry the given prefix. A nil
// inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) AnalysisKey(datasetHash string) string {
	return k.prefix + k.inner.AnalysisKey(datasetHash)
}

func (k *ScopedKeyer) DocumentKey(analysisHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(analysisHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(documentHash, opts)
}
