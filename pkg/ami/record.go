// Package ami locates the most recent Ubuntu EC2 image (AMI) for a region
// using the Ubuntu cloud image locator.
package ami

import (
	"fmt"
	"strings"
)

// recordFields is the number of columns in every catalog row.
const recordFields = 8

// Record is one row of the locator catalog.
type Record struct {
	Region        string `json:"region" yaml:"region"`                 // e.g., "us-east-1"
	ReleaseName   string `json:"release_name" yaml:"release_name"`     // e.g., "bionic"
	ReleaseNumber string `json:"release_number" yaml:"release_number"` // e.g., "18.04 LTS"
	Architecture  string `json:"arch" yaml:"arch"`                     // e.g., "amd64"
	InstanceType  string `json:"instance_type" yaml:"instance_type"`   // e.g., "hvm:ebs-ssd"
	PublishDate   string `json:"date" yaml:"date"`                     // e.g., "20200423"
	ImageMarkup   string `json:"image_link" yaml:"image_link"`         // <a href="...">ami-...</a>
	HVM           string `json:"hvm" yaml:"hvm"`
}

// recordFromRow maps a validated row onto a Record by position.
func recordFromRow(row []string) (Record, error) {
	if len(row) != recordFields {
		return Record{}, fmt.Errorf("%w: row has %d fields, want %d", ErrDecode, len(row), recordFields)
	}
	return Record{
		Region:        row[0],
		ReleaseName:   row[1],
		ReleaseNumber: row[2],
		Architecture:  row[3],
		InstanceType:  row[4],
		PublishDate:   row[5],
		ImageMarkup:   row[6],
		HVM:           row[7],
	}, nil
}

// ImageID returns the identifier embedded in the record's image link.
func (r Record) ImageID() (string, error) {
	return ExtractImageID(r.ImageMarkup)
}

// ExtractImageID returns the text between the first '>' and the last '<'
// of an anchor such as `<a href="...">ami-0abc</a>`.
func ExtractImageID(markup string) (string, error) {
	start := strings.IndexByte(markup, '>')
	if start < 0 {
		return "", fmt.Errorf("%w: no '>' in %q", ErrExtraction, markup)
	}
	end := strings.LastIndexByte(markup, '<')
	if end < 0 {
		return "", fmt.Errorf("%w: no '<' in %q", ErrExtraction, markup)
	}
	if start+1 >= end {
		return "", fmt.Errorf("%w: empty or inverted span in %q", ErrExtraction, markup)
	}
	return markup[start+1 : end], nil
}
