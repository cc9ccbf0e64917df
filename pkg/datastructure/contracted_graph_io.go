package datastructure

import (
	"fmt"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/kelindar/binary"
)

// contractedGraphFile is the on-disk layout of the contracted-graph
// artifact: kelindar/binary encoding wrapped in bzip2.
type contractedGraphFile struct {
	Nodes         []CHNode
	OutEdges      []CHEdge
	InEdges       []CHEdge
	FirstOut      [][]int32
	FirstIn       [][]int32
	ShortcutCount int64
}

// WriteToFile serializes the contracted graph artifact.
func (ch *ContractedGraph) WriteToFile(path string) error {
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

	buf, err := binary.Marshal(&contractedGraphFile{
		Nodes:         ch.nodes,
		OutEdges:      ch.outEdges,
		InEdges:       ch.inEdges,
		FirstOut:      ch.firstOut,
		FirstIn:       ch.firstIn,
		ShortcutCount: ch.shortcutCount,
	})
	if err != nil {
		return err
	}

	_, err = bz.Write(buf)
	return err
}

// ReadContractedGraph deserializes a contracted-graph artifact and checks
// its internal consistency. Any mismatch aborts startup: a malformed
// artifact must never be served.
func ReadContractedGraph(path string) (*ContractedGraph, error) {
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

	var file contractedGraphFile
	if err := binary.Unmarshal(buf, &file); err != nil {
		return nil, fmt.Errorf("%s: corrupt contracted graph artifact: %w", path, err)
	}

	ch := &ContractedGraph{
		nodes:         file.Nodes,
		outEdges:      file.OutEdges,
		inEdges:       file.InEdges,
		firstOut:      file.FirstOut,
		firstIn:       file.FirstIn,
		shortcutCount: file.ShortcutCount,
	}

	if err := ch.checkConsistency(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ch, nil
}

func (ch *ContractedGraph) checkConsistency() error {
	n := int32(len(ch.nodes))
	if int32(len(ch.firstOut)) != n || int32(len(ch.firstIn)) != n {
		return fmt.Errorf("adjacency list count does not match node count %d", n)
	}
	if len(ch.outEdges) != len(ch.inEdges) {
		return fmt.Errorf("out/in edge count mismatch: %d vs %d", len(ch.outEdges), len(ch.inEdges))
	}

	numEdges := int32(len(ch.outEdges))
	for edgeID := int32(0); edgeID < numEdges; edgeID++ {
		edge := ch.outEdges[edgeID]
		if !ch.IsValidVertex(edge.From) || !ch.IsValidVertex(edge.To) {
			return fmt.Errorf("out-edge %d references vertex outside of [0, %d)", edgeID, n)
		}
		if edge.MirrorID < 0 || edge.MirrorID >= numEdges {
			return fmt.Errorf("out-edge %d has invalid mirror id %d", edgeID, edge.MirrorID)
		}
		if edge.IsShortcut {
			if edge.RemovedEdgeOne < 0 || edge.RemovedEdgeOne >= numEdges ||
				edge.RemovedEdgeTwo < 0 || edge.RemovedEdgeTwo >= numEdges {
				return fmt.Errorf("shortcut %d references missing constituent edges (%d, %d)",
					edgeID, edge.RemovedEdgeOne, edge.RemovedEdgeTwo)
			}
		}
	}
	return nil
}
