package component

// ScriptDriver runs a tengo script every frame that writes the entity's
// acceleration. Source wins over Path when both are set.
type ScriptDriver struct {
	Path   string
	Source []byte
	// Params is exposed read-only to the script as `params`.
	Params map[string]any
}

var ScriptDriverComponent = NewComponent[ScriptDriver]()
