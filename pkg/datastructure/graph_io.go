package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Text formats of the startup artifacts.
//
// .gr (edge file):
//	n m
//	from to weight dist        (m rows)
//
// .co (coordinate file):
//	n
//	id lat lon                 (n rows, ids dense and zero-based)
//
// Lines starting with '#' are skipped. Any structural problem is a
// configuration error: the caller must abort startup instead of serving a
// partial graph.

func readDataLine(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}

// ReadGraph reads the original road network from a .gr edge file.
func ReadGraph(grPath string) (*Graph, error) {
	f, err := os.Open(grPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)

	header, ok := readDataLine(sc)
	if !ok {
		return nil, fmt.Errorf("%s: missing graph header", grPath)
	}
	headerFields := strings.Fields(header)
	if len(headerFields) != 2 {
		return nil, fmt.Errorf("%s: graph header must be \"n m\", got %q", grPath, header)
	}

	numVertices, err := strconv.ParseInt(headerFields[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid vertex count: %w", grPath, err)
	}
	numEdges, err := strconv.ParseInt(headerFields[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid edge count: %w", grPath, err)
	}

	edges := make([]Edge, 0, numEdges)
	for i := int64(0); i < numEdges; i++ {
		line, ok := readDataLine(sc)
		if !ok {
			return nil, fmt.Errorf("%s: expected %d edge rows, got %d", grPath, numEdges, i)
		}
		fields := strings.Fields(line)
		if len(fields) != 3 && len(fields) != 4 {
			return nil, fmt.Errorf("%s: edge row %d must be \"from to weight [dist]\", got %q", grPath, i, line)
		}

		from, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s: edge row %d: %w", grPath, i, err)
		}
		to, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s: edge row %d: %w", grPath, i, err)
		}
		weight, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: edge row %d: %w", grPath, i, err)
		}
		dist := weight
		if len(fields) == 4 {
			dist, err = strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: edge row %d: %w", grPath, i, err)
			}
		}

		edges = append(edges, NewEdge(int32(i), int32(from), int32(to), weight, dist))
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return NewGraph(int32(numVertices), edges)
}

// ReadVertexCoordinates reads the vertex coordinate set from a .co file.
func ReadVertexCoordinates(coPath string) (*VertexCoordinates, error) {
	f, err := os.Open(coPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)

	header, ok := readDataLine(sc)
	if !ok {
		return nil, fmt.Errorf("%s: missing coordinate header", coPath)
	}
	numVertices, err := strconv.ParseInt(strings.Fields(header)[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid vertex count: %w", coPath, err)
	}

	lat := make([]float64, numVertices)
	lon := make([]float64, numVertices)
	seen := make([]bool, numVertices)

	for i := int64(0); i < numVertices; i++ {
		line, ok := readDataLine(sc)
		if !ok {
			return nil, fmt.Errorf("%s: expected %d coordinate rows, got %d", coPath, numVertices, i)
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%s: coordinate row %d must be \"id lat lon\", got %q", coPath, i, line)
		}

		id, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s: coordinate row %d: %w", coPath, i, err)
		}
		if id < 0 || id >= numVertices {
			return nil, fmt.Errorf("%s: vertex id %d outside of [0, %d)", coPath, id, numVertices)
		}
		if seen[id] {
			return nil, fmt.Errorf("%s: duplicate vertex id %d", coPath, id)
		}
		seen[id] = true

		lat[id], err = strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: coordinate row %d: %w", coPath, i, err)
		}
		lon[id], err = strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: coordinate row %d: %w", coPath, i, err)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return NewVertexCoordinates(lat, lon)
}

// WriteGraph writes the .gr representation of g. Used by tooling and tests.
func WriteGraph(g *Graph, grPath string) error {
	f, err := os.Create(grPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintf(w, "%d %d\n", g.NumberOfVertices(), g.NumberOfEdges())
	for edgeID := int32(0); edgeID < g.NumberOfEdges(); edgeID++ {
		edge := g.GetOutEdge(edgeID)
		weightF := strconv.FormatFloat(edge.Weight, 'f', -1, 64)
		distF := strconv.FormatFloat(edge.Dist, 'f', -1, 64)
		fmt.Fprintf(w, "%d %d %s %s\n", edge.From, edge.To, weightF, distF)
	}
	return nil
}

// WriteVertexCoordinates writes the .co representation of vc.
func WriteVertexCoordinates(vc *VertexCoordinates, coPath string) error {
	f, err := os.Create(coPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintf(w, "%d\n", vc.Len())
	for v := int32(0); v < vc.Len(); v++ {
		lat, lon := vc.GetVertexCoordinates(v)
		latF := strconv.FormatFloat(lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(lon, 'f', -1, 64)
		fmt.Fprintf(w, "%d %s %s\n", v, latF, lonF)
	}
	return nil
}
