package datastructure

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dsnet/compress/bzip2"
	"github.com/kelindar/binary"
)

// LabelEntry is one hub of a vertex label. Weight is the upward distance
// between the label owner and Hub in the contracted graph. Parent is the hub
// preceding Hub on that upward path (-1 at the owner itself) and EdgeID the
// contracted out-edge connecting them: for forward labels the edge runs
// Parent -> Hub, for backward labels Hub -> Parent.
type LabelEntry struct {
	Hub    int32
	Weight float64
	Parent int32
	EdgeID int32
}

// HubLabels holds the per-vertex forward and backward label sets, sorted by
// hub id so queries can merge-join them. Loaded once from a precomputed
// artifact, read-only afterwards.
type HubLabels struct {
	forward  [][]LabelEntry
	backward [][]LabelEntry
}

func NewHubLabels(forward, backward [][]LabelEntry) (*HubLabels, error) {
	if len(forward) != len(backward) {
		return nil, fmt.Errorf("forward/backward label count mismatch: %d vs %d",
			len(forward), len(backward))
	}
	hl := &HubLabels{forward: forward, backward: backward}
	hl.sortLabels()
	return hl, nil
}

func (hl *HubLabels) sortLabels() {
	for v := range hl.forward {
		sort.Slice(hl.forward[v], func(i, j int) bool {
			return hl.forward[v][i].Hub < hl.forward[v][j].Hub
		})
		sort.Slice(hl.backward[v], func(i, j int) bool {
			return hl.backward[v][i].Hub < hl.backward[v][j].Hub
		})
	}
}

func (hl *HubLabels) NumberOfVertices() int32 {
	return int32(len(hl.forward))
}

func (hl *HubLabels) ForwardLabel(v int32) []LabelEntry {
	return hl.forward[v]
}

func (hl *HubLabels) BackwardLabel(v int32) []LabelEntry {
	return hl.backward[v]
}

// FindLabelEntry binary-searches a label (sorted by hub id) for hub.
func FindLabelEntry(label []LabelEntry, hub int32) (LabelEntry, bool) {
	i := sort.Search(len(label), func(i int) bool {
		return label[i].Hub >= hub
	})
	if i < len(label) && label[i].Hub == hub {
		return label[i], true
	}
	return LabelEntry{}, false
}

type hubLabelsFile struct {
	Forward  [][]LabelEntry
	Backward [][]LabelEntry
}

// WriteToFile serializes the hub-label artifact.
func (hl *HubLabels) WriteToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	buf, err := binary.Marshal(&hubLabelsFile{
		Forward:  hl.forward,
		Backward: hl.backward,
	})
	if err != nil {
		return err
	}

	_, err = bz.Write(buf)
	return err
}

// ReadHubLabels deserializes a hub-label artifact.
func ReadHubLabels(path string) (*HubLabels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, new(bzip2.ReaderConfig))
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	buf, err := io.ReadAll(bz)
	if err != nil {
		return nil, err
	}

	var file hubLabelsFile
	if err := binary.Unmarshal(buf, &file); err != nil {
		return nil, fmt.Errorf("%s: corrupt hub label artifact: %w", path, err)
	}

	return NewHubLabels(file.Forward, file.Backward)
}
