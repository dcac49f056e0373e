package globalconfig

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file defaults.
const (
	EnvRegion        = "UAMI_REGION"
	EnvRelease       = "UAMI_RELEASE"
	EnvReleaseNumber = "UAMI_RELEASE_NUMBER"
	EnvInstanceType  = "UAMI_INSTANCE_TYPE"
	EnvArch          = "UAMI_ARCH"
)

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overrides defaults with any UAMI_* variables that are set.
func (c *Config) ApplyEnv() {
	override(&c.Defaults.Region, EnvRegion)
	override(&c.Defaults.ReleaseName, EnvRelease)
	override(&c.Defaults.ReleaseNumber, EnvReleaseNumber)
	override(&c.Defaults.InstanceType, EnvInstanceType)
	override(&c.Defaults.Architecture, EnvArch)
}

func override(dst *string, key string) {
	if value, ok := os.LookupEnv(key); ok {
		*dst = value
	}
}
