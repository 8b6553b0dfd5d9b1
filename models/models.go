package models

// Index is the top-level catalog manifest served at res/json/index.json
type Index struct {
	ServerName string         `json:"server_name"`
	Comment    string         `json:"comment"`
	Scenarios  []ScenarioMeta `json:"scenarios"`
	Beta       *ScenarioMeta  `json:"beta,omitempty"`
}

// ScenarioMeta describes where a scenario body is hosted
type ScenarioMeta struct {
	Name     string  `json:"name"`
	Lang     *string `json:"lang,omitempty"`
	Filename string  `json:"filename"`
}

// Scenario is an ordered list of scenes; settings refer to scenes by position
type Scenario struct {
	Scenes []Scene `json:"scenes"`
}

// Scene holds interchangeable message templates using %1$s and %2$s placeholders
type Scene struct {
	Name     string   `json:"name"`
	Messages []string `json:"messages"`
}

// LoadedScenario pairs a scenario body with its metadata
type LoadedScenario struct {
	Meta     ScenarioMeta
	Scenario Scenario
}

// LoadedCatalog is the index plus every scenario it references, in index order
// followed by the beta scenario. It is never mutated after a load.
type LoadedCatalog struct {
	Index     Index
	Scenarios []LoadedScenario
}

// Settings are the user's selection preferences
type Settings struct {
	IgnoreLanguage bool `json:"ignore_language"`
	ScenarioIndex  *int `json:"scenario_index"`
	SceneIndex     *int `json:"scene_index"`
}

// RandomizedMessage is one template bound to two participant names
type RandomizedMessage struct {
	Message string
	Names   [2]string
}

// Pairing is a rendered pairing as returned to clients
type Pairing struct {
	Text  string    `json:"text"`
	Names [2]string `json:"names"`
}

// GenerateResult is the outcome of a single generate action
type GenerateResult struct {
	Scenario string    `json:"scenario"`
	Scene    string    `json:"scene"`
	Title    string    `json:"title"`
	Pairings []Pairing `json:"pairings"`
}

// CatalogStatus describes the catalog load state
type CatalogStatus struct {
	State           string `json:"state"`
	ServerName      string `json:"serverName,omitempty"`
	Comment         string `json:"comment,omitempty"`
	ScenarioCount   int    `json:"scenarioCount"`
	Error           string `json:"error,omitempty"`
	GenerateEnabled bool   `json:"generateEnabled"`
}

// ScenarioOption is a scenario entry as listed for the settings UI
type ScenarioOption struct {
	Index  int      `json:"index"`
	Name   string   `json:"name"`
	Lang   string   `json:"lang,omitempty"`
	Beta   bool     `json:"beta"`
	Scenes []string `json:"scenes"`
}

// CatalogResponse is returned by GET /api/catalog
type CatalogResponse struct {
	ServerName string           `json:"serverName"`
	Comment    string           `json:"comment"`
	Scenarios  []ScenarioOption `json:"scenarios"`
}

// NamesUpdateRequest replaces the name list; Text is split on newlines when Names is empty
type NamesUpdateRequest struct {
	Names []string `json:"names"`
	Text  string   `json:"text"`
}

// NamesResponse is returned by the names endpoints
type NamesResponse struct {
	Names []string `json:"names"`
}

// IndexUpdateRequest pins or unpins a scenario or scene position
type IndexUpdateRequest struct {
	Index *int `json:"index"`
}
