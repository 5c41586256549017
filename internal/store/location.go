package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/mpipgo/internal/model"
)

// Partition selects the collection key that records are grouped by.
type Partition string

const (
	PartitionBatchSize Partition = "batch_size"
	PartitionNumNodes  Partition = "num_nodes"
)

// ParsePartition validates a partition name.
func ParsePartition(s string) (Partition, error) {
	switch p := Partition(strings.ToLower(strings.TrimSpace(s))); p {
	case PartitionBatchSize, PartitionNumNodes:
		return p, nil
	case "":
		return PartitionBatchSize, nil
	default:
		return "", fmt.Errorf("invalid partition %q: must be %q or %q", s, PartitionBatchSize, PartitionNumNodes)
	}
}

// Location is where a record is stored.
type Location struct {
	Collection string
	ID         string
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return l.Collection + "/" + l.ID
}

// CollectionFor returns experiments/{interface_type}/{key}, where key is
// "<n>_batch" or "<n>_nodes" depending on the partition. A record without a
// batch size goes to "no_batch".
func CollectionFor(rec *model.ParsedRecord, p Partition) string {
	iface := rec.InterfaceType
	if iface == "" {
		iface = "unknown"
	}

	var key string
	switch p {
	case PartitionNumNodes:
		key = fmt.Sprintf("%d_nodes", rec.RunInfo.NumNodes)
	default:
		if bs := rec.RunInfo.BatchSize; bs != nil {
			key = fmt.Sprintf("%d_batch", *bs)
		} else {
			key = "no_batch"
		}
	}
	return fmt.Sprintf("experiments/%s/%s", iface, key)
}

// NewLocation derives a fresh, globally unique location for rec.
func NewLocation(rec *model.ParsedRecord, p Partition) Location {
	return Location{
		Collection: CollectionFor(rec, p),
		ID:         "experiment_" + uuid.NewString(),
	}
}
