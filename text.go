package main

import (
	_ "embed"

	"github.com/Zachkp/resume/internal/resume"
)

// defaultResume is served when RESUME_PATH is unset.
//
//go:embed content/resume.yaml
var defaultResume []byte

func loadResume(path string) (*resume.Resume, error) {
	if path == "" {
		return resume.Parse(defaultResume)
	}
	return resume.Load(path)
}
