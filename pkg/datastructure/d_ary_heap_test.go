package datastructure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeapExtractsInRankOrder(t *testing.T) {
	for _, d := range []int{2, 4} {
		pq := NewdAryHeap[int32](d)

		ranks := make([]float64, 0, 100)
		for i := 0; i < 100; i++ {
			rank := rand.Float64() * 1000
			ranks = append(ranks, rank)
			pq.Insert(NewPriorityQueueNode(rank, int32(i)))
		}
		sort.Float64s(ranks)

		for _, want := range ranks {
			node, err := pq.ExtractMin()
			assert.NoError(t, err)
			assert.Equal(t, want, node.GetRank())
		}
		assert.True(t, pq.IsEmpty())
	}
}

func TestHeapDecreaseKey(t *testing.T) {
	pq := NewBinaryHeap[int32]()

	a := NewPriorityQueueNode(10.0, int32(0))
	b := NewPriorityQueueNode(20.0, int32(1))
	c := NewPriorityQueueNode(30.0, int32(2))
	pq.Insert(a)
	pq.Insert(b)
	pq.Insert(c)

	assert.NoError(t, pq.DecreaseKey(c, 5.0))

	node, err := pq.ExtractMin()
	assert.NoError(t, err)
	assert.Equal(t, int32(2), node.GetItem())

	// raising a key is not allowed
	assert.Error(t, pq.DecreaseKey(b, 50.0))
}

func TestHeapExtractFromEmpty(t *testing.T) {
	pq := NewBinaryHeap[int32]()
	_, err := pq.ExtractMin()
	assert.Error(t, err)
	_, err = pq.GetMin()
	assert.Error(t, err)
}
