// Package propmap provides numeric property maps keyed by graph vertices or
// edges.
//
// Maps are stored densely and indexed by graph.Vertex or graph.Edge.ID.
// Accessing a key outside the map's domain panics; maps of the same run are
// expected to cover exactly the same vertex (or edge) set as the graph they
// are used with.
package propmap

import "github.com/linksrus/rankflow/graph"

// VertexMap is implemented by types that store a numeric value per vertex.
//
// Concurrent calls to Get are always safe. Concurrent calls to Set are safe
// as long as they target distinct vertices.
type VertexMap interface {
	// Len returns the number of vertices covered by the map.
	Len() int

	// Get returns the value associated with v.
	Get(v graph.Vertex) float64

	// Set associates val with v.
	Set(v graph.Vertex, val float64)
}

// EdgeMap is implemented by types that provide a numeric weight per edge.
type EdgeMap interface {
	// Weight returns the weight of e.
	Weight(e graph.Edge) float64
}

// Float64VertexMap is a slice-backed VertexMap.
type Float64VertexMap struct {
	values []float64
}

// NewVertexMap returns a zero-initialized map for n vertices.
func NewVertexMap(n int) *Float64VertexMap {
	return &Float64VertexMap{values: make([]float64, n)}
}

// Uniform returns a map for n vertices where each entry is set to 1/n.
func Uniform(n int) *Float64VertexMap {
	m := NewVertexMap(n)
	if n > 0 {
		m.Fill(1.0 / float64(n))
	}
	return m
}

// FromValues returns a map backed by the provided slice.
func FromValues(values []float64) *Float64VertexMap {
	return &Float64VertexMap{values: values}
}

// Len implements VertexMap.
func (m *Float64VertexMap) Len() int { return len(m.values) }

// Get implements VertexMap.
func (m *Float64VertexMap) Get(v graph.Vertex) float64 { return m.values[v] }

// Set implements VertexMap.
func (m *Float64VertexMap) Set(v graph.Vertex, val float64) { m.values[v] = val }

// Fill sets every entry of the map to val.
func (m *Float64VertexMap) Fill(val float64) {
	for i := range m.values {
		m.values[i] = val
	}
}

// Values returns the slice backing the map.
func (m *Float64VertexMap) Values() []float64 { return m.values }

// Sum returns the sum of all values in m.
func Sum(m VertexMap) float64 {
	var sum float64
	for v := 0; v < m.Len(); v++ {
		sum += m.Get(graph.Vertex(v))
	}
	return sum
}

// Float64EdgeMap is a slice-backed EdgeMap keyed by edge ID.
type Float64EdgeMap []float64

// Weight implements EdgeMap.
func (m Float64EdgeMap) Weight(e graph.Edge) float64 { return m[e.ID] }

// Int64EdgeMap is a slice-backed EdgeMap for integral weights keyed by edge ID.
type Int64EdgeMap []int64

// Weight implements EdgeMap.
func (m Int64EdgeMap) Weight(e graph.Edge) float64 { return float64(m[e.ID]) }

// UnitWeight is an EdgeMap that assigns a weight of 1 to every edge. It is
// used whenever no explicit weights are provided.
type UnitWeight struct{}

// Weight implements EdgeMap.
func (UnitWeight) Weight(graph.Edge) float64 { return 1 }
