// Package modules defines web module registry helpers.
package modules

import (
	module "github.com/louisbranch/onboarding/internal/services/web/module"
	"github.com/louisbranch/onboarding/internal/services/web/modules/checklist"
	"github.com/louisbranch/onboarding/internal/services/web/modules/projectchooser"
)

// Module aliases the module interface contract.
type Module = module.Module

// Default returns the onboarding web modules in mount order.
func Default() []Module {
	return []Module{
		checklist.New(),
		projectchooser.New(),
	}
}
