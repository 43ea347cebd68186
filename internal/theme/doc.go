// Package theme discovers theme source folders and their compiled CSS,
// infers light/dark variants from folder names, and scaffolds new theme
// pairs from a template pair or the embedded starter.
package theme
