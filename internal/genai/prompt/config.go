package prompt

// Config describes a prompt definition loaded from YAML frontmatter.
type Config struct {
	Slug        string    `yaml:"slug" json:"slug"`
	Name        string    `yaml:"name,omitempty" json:"name,omitempty"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string    `yaml:"version,omitempty" json:"version,omitempty"`
	Input       InputSpec `yaml:"input,omitempty" json:"input,omitempty"`
	Template    string    `yaml:"template,omitempty" json:"template,omitempty"`
}

// InputSpec declares which variables a template expects.
type InputSpec struct {
	RequiredVariables []string `yaml:"required_variables,omitempty" json:"required_variables,omitempty"`
	OptionalVariables []string `yaml:"optional_variables,omitempty" json:"optional_variables,omitempty"`
}

// Prompt wraps a validated prompt definition with its source.
type Prompt struct {
	Config Config
	Source string
}
