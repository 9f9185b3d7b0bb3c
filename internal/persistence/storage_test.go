package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"grid-tactics/internal/models"
)

func TestLoadGameConfigMissingDirUsesDefaults(t *testing.T) {
	cfg, err := LoadGameConfig(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.Classes, models.DefaultClassSpecs()) {
		t.Error("class specs differ from built-in defaults")
	}
	if !reflect.DeepEqual(cfg.Terrain, models.DefaultTerrainSpecs()) {
		t.Error("terrain specs differ from built-in defaults")
	}
}

func TestWriteDefaultSpecsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := WriteDefaultSpecs(dir); err != nil {
		t.Fatalf("WriteDefaultSpecs failed: %v", err)
	}
	for _, name := range []string{"units.json", "terrain.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	cfg, err := LoadGameConfig(dir)
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.Classes, models.DefaultClassSpecs()) {
		t.Error("round-tripped class specs differ from defaults")
	}
	if !reflect.DeepEqual(cfg.Terrain, models.DefaultTerrainSpecs()) {
		t.Error("round-tripped terrain specs differ from defaults")
	}
}

func TestWriteDefaultSpecsKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	custom := []byte(`{"warrior": {"name": "Warrior", "max_hp": 99, "attack": 1, "defense": 1, "movement": 1, "min_attack_range": 1, "max_attack_range": 1}}`)
	if err := os.WriteFile(filepath.Join(dir, "units.json"), custom, 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteDefaultSpecs(dir); err != nil {
		t.Fatalf("WriteDefaultSpecs failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "units.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(custom) {
		t.Error("existing units.json was overwritten")
	}
}

func TestLoadClassSpecsOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	override := map[models.UnitClass]models.ClassSpec{
		models.ClassWarrior: {Name: "Warrior", MaxHP: 40, Attack: 9, Defense: 7, Movement: 5, MinAttackRange: 1, MaxAttackRange: 1},
	}
	data, err := json.Marshal(override)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "units.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	specs, err := LoadClassSpecs(dir)
	if err != nil {
		t.Fatalf("LoadClassSpecs failed: %v", err)
	}
	if specs[models.ClassWarrior].MaxHP != 40 {
		t.Errorf("warrior max HP = %d, want overridden 40", specs[models.ClassWarrior].MaxHP)
	}
	if got, want := specs[models.ClassArcher], models.DefaultClassSpecs()[models.ClassArcher]; got != want {
		t.Errorf("archer spec = %+v, want untouched default %+v", got, want)
	}
}

func TestLoadTerrainSpecsRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "terrain.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTerrainSpecs(dir); err == nil {
		t.Error("malformed terrain.json loaded without error")
	}
}
