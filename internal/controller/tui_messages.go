package controller

import (
	"github.com/SikamikanikoBG/codelens/internal/domain"
)

// Message types.
type scanProgressMsg struct {
	progress domain.ScanProgress
}

type scanDoneMsg struct{}
