// Package placefinder provides a local, browser-based tool for finding
// geographic places with a generative language model and keeping a list of
// saved places with AI-written summaries.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, http/).
package placefinder

// MinQueryLength is the shortest query, in characters, that is sent to the
// search backend. Shorter queries yield no suggestions.
const MinQueryLength = 3
