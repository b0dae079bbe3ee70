package model

// Project is a DigitalOcean project.
type Project struct {
	ID        string
	Name      string
	IsDefault bool
}
