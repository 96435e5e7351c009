// Package portfolio holds the site's static content: profile, experience,
// projects and contact details. The built-in content is embedded YAML; a
// file with the same shape can replace it.
package portfolio

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// ErrInvalidContent is wrapped by every validation failure.
var ErrInvalidContent = errors.New("invalid portfolio content")

type Content struct {
	Profile     Profile      `yaml:"profile"`
	Experiences []Experience `yaml:"experiences"`
	Projects    []Project    `yaml:"projects"`
	Contact     Contact      `yaml:"contact"`
	Footer      string       `yaml:"footer"`
}

type Profile struct {
	Name     string `yaml:"name"`
	Headline []Line `yaml:"headline"`
	Links    []Link `yaml:"links"`
}

// Line is one typewriter line of the hero section. Prefix is shown as-is,
// Text is revealed after Delay.
type Line struct {
	Prefix string        `yaml:"prefix"`
	Text   string        `yaml:"text"`
	Delay  time.Duration `yaml:"delay"`
}

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Experience is one record of the experience carousel.
type Experience struct {
	Title    string   `yaml:"title"`
	Role     string   `yaml:"role"`
	Location string   `yaml:"location"`
	Date     string   `yaml:"date"`
	Bullets  []string `yaml:"bullets"`
}

type Project struct {
	Name       string   `yaml:"name"`
	Period     string   `yaml:"period"`
	Summary    string   `yaml:"summary"`
	Highlights []string `yaml:"highlights"`
	Tags       []string `yaml:"tags"`
}

type Contact struct {
	Heading    string `yaml:"heading"`
	Blurb      string `yaml:"blurb"`
	Email      string `yaml:"email"`
	ResumeName string `yaml:"resume_name"`
}

// Default returns the embedded content.
func Default() (*Content, error) {
	return Parse(defaultContent)
}

// Load reads content from a YAML file.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML content.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the fields the views rely on.
func (c *Content) Validate() error {
	if c.Profile.Name == "" {
		return fmt.Errorf("%w: profile name is required", ErrInvalidContent)
	}
	for i, line := range c.Profile.Headline {
		if line.Delay < 0 {
			return fmt.Errorf("%w: headline %d has negative delay", ErrInvalidContent, i)
		}
	}
	if len(c.Experiences) == 0 {
		return fmt.Errorf("%w: at least one experience is required", ErrInvalidContent)
	}
	for i, exp := range c.Experiences {
		if exp.Title == "" {
			return fmt.Errorf("%w: experience %d has no title", ErrInvalidContent, i)
		}
	}
	return nil
}

// Place joins role and location the way the experience cards print them.
func (e Experience) Place() string {
	if e.Location == "" {
		return e.Role
	}
	return e.Role + " · " + e.Location
}
