package main

import (
	"errors"

	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/ami"
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/globalconfig"
	"github.com/spf13/cobra"
)

// queryFlags are the lookup criteria shared by latest, list, browse.
type queryFlags struct {
	region        string
	release       string
	releaseNumber string
	instanceType  string
	arch          string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.region, "region", "r", "", "AWS region, e.g. us-east-1 (default from config)")
	flags.StringVarP(&f.release, "release", "n", "", "Release name, e.g. noble (empty matches all)")
	flags.StringVar(&f.releaseNumber, "release-number", "", "Release number, e.g. \"24.04 LTS\" (empty matches all)")
	flags.StringVarP(&f.instanceType, "instance-type", "t", "", "Instance type, e.g. hvm:ebs-ssd (empty matches all)")
	flags.StringVarP(&f.arch, "arch", "a", "", "Architecture, e.g. amd64 or arm64 (empty matches all)")
}

// resolve layers explicitly set flags over the configured defaults.
// Passing a flag with an empty value clears the default.
func (f *queryFlags) resolve(cmd *cobra.Command, cfg *globalconfig.Config) (ami.Query, error) {
	q := cfg.Query()
	flags := cmd.Flags()

	if flags.Changed("region") {
		q.Region = f.region
	}
	if flags.Changed("release") {
		q.ReleaseName = f.release
	}
	if flags.Changed("release-number") {
		q.ReleaseNumber = f.releaseNumber
	}
	if flags.Changed("instance-type") {
		q.InstanceType = f.instanceType
	}
	if flags.Changed("arch") {
		q.Architecture = f.arch
	}

	if q.Region == "" {
		return ami.Query{}, errors.New("region is required: pass --region or set defaults.region")
	}
	return q, nil
}
