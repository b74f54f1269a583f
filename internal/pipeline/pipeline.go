package pipeline

import (
	"sync"

	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/pvst"
	"github.com/povu/povu/internal/rov"
	"github.com/povu/povu/internal/vcfout"
)

// Config bounds a Run call: how many RoVs go in one chunk, how many
// in-flight chunks the bounded queue holds, and how many pool workers
// process RoVs concurrently.
type Config struct {
	ChunkSize   int
	QueueLength int
	Workers     int
}

// DefaultConfig matches the CLI's documented defaults.
func DefaultConfig() Config {
	return Config{ChunkSize: 100, QueueLength: 4, Workers: 0}
}

// Run drives the producer/consumer variant-calling pipeline: a producer
// goroutine walks rovs in chunks, fanning each chunk's RoVs out to a
// worker pool (preserving each RoV's position in its chunk) before pushing
// the chunk's record batch onto a bounded queue; a consumer goroutine pops
// batches and hands them to consume in the order they were pushed. The
// first error from either side closes the queue and is returned.
func Run(g *graph.Graph, pt *pvst.Tree, rovs []*rov.RoV, refIDs map[graph.ID]bool, cfg Config, consume func([]*vcfout.Record) error) error {
	chunkSize := cfg.ChunkSize
	if chunkSize < 1 {
		chunkSize = 1
	}
	queue := NewBoundedQueue[[]*vcfout.Record](cfg.QueueLength)
	pool := NewPool(cfg.Workers)
	defer pool.Close()

	invIdx := NewInversionIndex()

	var wg sync.WaitGroup
	var producerErr, consumeErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer queue.Close()
		for start := 0; start < len(rovs); start += chunkSize {
			end := start + chunkSize
			if end > len(rovs) {
				end = len(rovs)
			}
			chunkRovs := rovs[start:end]
			perRoV := make([][]*vcfout.Record, len(chunkRovs))

			group := NewTaskGroup(pool)
			for i, r := range chunkRovs {
				i, r := i, r
				group.Go(func() error {
					perRoV[i] = BuildRoVRecords(g, pt, r, refIDs, invIdx)
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				producerErr = err
				return
			}

			var batch []*vcfout.Record
			for _, recs := range perRoV {
				batch = append(batch, recs...)
			}
			if len(batch) == 0 {
				continue
			}
			if !queue.Push(batch) {
				return
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			batch, ok := queue.Pop()
			if !ok {
				return
			}
			if err := consume(batch); err != nil {
				consumeErr = err
				queue.Close()
				return
			}
		}
	}()

	wg.Wait()
	if consumeErr != nil {
		return consumeErr
	}
	return producerErr
}
