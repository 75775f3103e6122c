package c4zero

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/alphabeth/c4zero/game"
	"github.com/alphabeth/c4zero/mcts"
	"github.com/pkg/errors"
)

// metaFile is the JSON sidecar name a driver writes alongside any
// evaluator weights, mirroring the teacher's own meta.json convention
// for persisting the config a run used without entangling it with the
// (out-of-scope) model checkpoint format itself.
const metaFile = "meta.json"

// MetaData is the persisted configuration for one run: the board
// shape and the search parameters. It intentionally carries nothing
// about evaluator architecture or weights (see spec.md §1 Non-goals).
type MetaData struct {
	GameConf game.GameConfig `json:"game_conf"`
	MCTSConf mcts.Config     `json:"mcts_conf"`
}

// SaveMeta writes meta as JSON to metaFile under dir, creating dir if
// it doesn't already exist.
func SaveMeta(dir string, meta MetaData) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "c4zero: creating run directory")
	}
	blob, err := json.MarshalIndent(meta, "", "\t")
	if err != nil {
		return errors.Wrap(err, "c4zero: marshaling meta data")
	}
	path := dir + string(os.PathSeparator) + metaFile
	if err := ioutil.WriteFile(path, blob, 0644); err != nil {
		return errors.Wrap(err, "c4zero: writing meta data")
	}
	return nil
}

// LoadMeta reads and parses the meta.json sidecar under dir.
func LoadMeta(dir string) (MetaData, error) {
	path := dir + string(os.PathSeparator) + metaFile
	blob, err := ioutil.ReadFile(path)
	if err != nil {
		return MetaData{}, errors.Wrap(err, "c4zero: reading meta data")
	}
	var meta MetaData
	if err := json.Unmarshal(blob, &meta); err != nil {
		return MetaData{}, errors.Wrap(err, "c4zero: parsing meta data")
	}
	return meta, nil
}
