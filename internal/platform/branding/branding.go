// Package branding holds product naming shared by every surface.
package branding

// AppName is the product name used when no localized name is available.
const AppName = "Onboarding"
