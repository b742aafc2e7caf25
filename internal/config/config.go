// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config loads, validates and interactively creates the per-user
// licer configuration stored at ~/.config/licer.yml.
package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role determines which license a person's files are released under.
type Role string

// Known roles.
const (
	Student Role = "Student"
	Faculty Role = "Faculty"
	Staff   Role = "Staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case Student, Faculty, Staff:
		return true
	}
	return false
}

// DefaultOrganization is offered when the user leaves the organization empty.
const DefaultOrganization = "Oregon State University"

var (
	// ErrIncomplete is returned for a configuration file with missing fields.
	ErrIncomplete = errors.New("config file is incomplete, please delete it and run again to recreate")
	// ErrInvalidRole is returned for a role other than Student, Faculty or Staff.
	ErrInvalidRole = errors.New("invalid role")
)

// Config is the per-user configuration.
type Config struct {
	FullName     string `yaml:"FULL_NAME"`
	DefaultRole  Role   `yaml:"DEFAULT_ROLE"`
	DeptOrLab    string `yaml:"DEPT_OR_LAB"`
	Organization string `yaml:"ORGANIZATION"`
}

// Validate checks that all fields are set and the role is known.
func (c *Config) Validate() error {
	if c.FullName == "" || c.DefaultRole == "" || c.DeptOrLab == "" || c.Organization == "" {
		return ErrIncomplete
	}
	if !c.DefaultRole.Valid() {
		return fmt.Errorf("%w %q, must be Student, Faculty, or Staff", ErrInvalidRole, c.DefaultRole)
	}
	return nil
}

// Template describes the license a configuration produces.
type Template struct {
	LicenseType    string
	CopyrightOwner string
}

// Template returns the license template for c. Students own their code under
// MIT; faculty and staff work is owned by the organization under Apache-2.0.
func (c *Config) Template() Template {
	switch c.DefaultRole {
	case Faculty, Staff:
		return Template{LicenseType: "Apache-2.0", CopyrightOwner: c.Organization}
	default:
		return Template{LicenseType: "MIT", CopyrightOwner: c.FullName}
	}
}

// Path returns the configuration file location under home.
func Path(home string) string {
	return filepath.Join(home, ".config", "licer.yml")
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes c to path as YAML, creating the parent directory.
func Save(path string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Prompter asks the user for the configuration fields.
type Prompter struct {
	In  io.Reader
	Out io.Writer
	// DefaultName is offered as the full name. Usually the git user name.
	DefaultName string
}

// Create asks for each field in turn and returns the resulting configuration.
// The role question repeats until a valid choice is entered.
func (p *Prompter) Create() (*Config, error) {
	r := bufio.NewReader(p.In)
	c := new(Config)

	if p.DefaultName != "" {
		fmt.Fprintf(p.Out, "Full Name (default: %s): ", p.DefaultName)
	} else {
		fmt.Fprint(p.Out, "Full Name: ")
	}
	name, err := readLine(r)
	if err != nil {
		return nil, err
	}
	switch {
	case name != "":
		c.FullName = name
	case p.DefaultName != "":
		c.FullName = p.DefaultName
	default:
		return nil, errors.New("full name is required")
	}

	for c.DefaultRole == "" {
		fmt.Fprint(p.Out, "Role (1=Student, 2=Faculty, 3=Staff): ")
		choice, err := readLine(r)
		if err != nil {
			return nil, err
		}
		switch choice {
		case "1":
			c.DefaultRole = Student
		case "2":
			c.DefaultRole = Faculty
		case "3":
			c.DefaultRole = Staff
		default:
			fmt.Fprintln(p.Out, "Please enter 1, 2, or 3")
		}
	}

	fmt.Fprint(p.Out, "Department/Lab: ")
	if c.DeptOrLab, err = readLine(r); err != nil {
		return nil, err
	}
	if c.DeptOrLab == "" {
		return nil, errors.New("department/lab is required")
	}

	fmt.Fprintf(p.Out, "Organization (default: %s): ", DefaultOrganization)
	if c.Organization, err = readLine(r); err != nil {
		return nil, err
	}
	if c.Organization == "" {
		c.Organization = DefaultOrganization
	}

	return c, nil
}

// readLine returns the next line without surrounding whitespace. A final line
// without a newline is accepted; running out of input entirely is an error.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// LoadOrCreate loads the configuration at path. When the file does not exist
// it is created through p and saved.
func LoadOrCreate(path string, p *Prompter) (c *Config, created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		c, err := Load(path)
		return c, false, err
	}
	c, err = p.Create()
	if err != nil {
		return nil, false, err
	}
	if err := Save(path, c); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// GitUserName returns the global git user.name, or an empty string when git
// is unavailable or the setting is missing.
func GitUserName(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "git", "config", "--global", "user.name").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
