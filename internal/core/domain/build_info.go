package domain

import "time"

// BuildInfo records the fingerprints a generated artifact was produced from.
// A nil *BuildInfo means nothing was recorded and covers no fingerprint.
type BuildInfo struct {
	Artifact   string    `json:"artifact,omitzero"`
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}

// CoversInput reports whether the artifact was produced from inputs fingerprinted as hash.
func (b *BuildInfo) CoversInput(hash string) bool {
	return b != nil && hash != "" && b.InputHash == hash
}

// CoversOutput reports whether the artifact on disk still fingerprints as hash.
func (b *BuildInfo) CoversOutput(hash string) bool {
	return b != nil && hash != "" && b.OutputHash == hash
}
