package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchBufferAddAndDrain(t *testing.T) {
	buffer := NewBatchBuffer[int](4)

	assert.Nil(t, buffer.GetAndClear())

	buffer.Add(1)
	buffer.Add(2)
	assert.Equal(t, 2, buffer.Size())

	batch := buffer.GetAndClear()
	assert.Equal(t, []int{1, 2}, batch)
	assert.Equal(t, 0, buffer.Size())
}

func TestBatchBufferConcurrentAdds(t *testing.T) {
	buffer := NewBatchBuffer[int](0)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			buffer.Add(n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, buffer.Size())
}
