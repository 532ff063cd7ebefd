// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package settingstore

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// serviceFields holds the subset of a service record validated on load.
// startupType is intentionally absent: unknown values are tolerated, not
// rejected: see registry.ParseStartupType.
type serviceFields struct {
	Name    string `validate:"required,max=24,printascii"`
	CmdPath string `validate:"required"`
}

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInst
}
