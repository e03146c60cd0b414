package domain

const (
	// BaseComposeFile is always the first compose layer.
	BaseComposeFile = "docker-compose.yaml"
	// ProdComposeFile is layered on top of the base in EnvProd.
	ProdComposeFile = "docker-compose.prod.yaml"
	// DevComposeFile is layered on top of the base in EnvDev.
	DevComposeFile = "docker-compose.dev.yaml"
)

// ComposeLayer is one compose file handed to the orchestrator.
// Later layers override earlier ones.
type ComposeLayer struct {
	File string
}

// SelectLayers returns the ordered compose layers for env.
// The base layer comes first, followed by exactly one environment layer.
// A non-empty overridePath is appended last so user overrides always win;
// callers pass it only when the override file exists.
func SelectLayers(env Environment, overridePath string) []ComposeLayer {
	layers := []ComposeLayer{{File: BaseComposeFile}}

	switch env {
	case EnvProd:
		layers = append(layers, ComposeLayer{File: ProdComposeFile})
	case EnvDev:
		layers = append(layers, ComposeLayer{File: DevComposeFile})
	}

	if overridePath != "" {
		layers = append(layers, ComposeLayer{File: overridePath})
	}
	return layers
}

// LayerArgs renders layers as orchestrator arguments: "-f <file>" per layer.
func LayerArgs(layers []ComposeLayer) []string {
	args := make([]string, 0, 2*len(layers))
	for _, l := range layers {
		args = append(args, "-f", l.File)
	}
	return args
}
