package config

// Configfile represents the structure of the wasmbuild.yaml configuration file.
type Configfile struct {
	Version string   `yaml:"version"`
	Target  string   `yaml:"target"`
	Tools   ToolsDTO `yaml:"tools"`
}

// ToolsDTO overrides the external program names.
type ToolsDTO struct {
	Compiler     string `yaml:"compiler"`
	GC           string `yaml:"gc"`
	Disassembler string `yaml:"disassembler"`
}
