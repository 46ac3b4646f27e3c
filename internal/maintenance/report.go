package maintenance

import (
	"sort"
	"time"
)

type DropReason string

const (
	DropMissingReference DropReason = "missing_reference"
	DropInvalidDate      DropReason = "invalid_date"
	DropDuplicateID      DropReason = "duplicate_id"
	DropMissingID        DropReason = "missing_id"
)

type CollectionReport struct {
	Received int                `json:"received"`
	Inserted int                `json:"inserted"`
	Dropped  map[DropReason]int `json:"dropped,omitempty"`
}

func (c *CollectionReport) drop(reason DropReason) {
	if c.Dropped == nil {
		c.Dropped = make(map[DropReason]int)
	}
	c.Dropped[reason]++
}

func (c *CollectionReport) DroppedTotal() int {
	total := 0
	for _, n := range c.Dropped {
		total += n
	}
	return total
}

// RestoreReport geri yüklemede atlanan satırları görünür kılar.
type RestoreReport struct {
	Collections map[string]*CollectionReport `json:"collections"`
	// Var olmayan kullanıcıya bağlı olduğu için userId'si boşaltılan personel sayısı
	RemappedUserIDs int           `json:"remappedUserIds"`
	Duration        time.Duration `json:"duration"`
}

func newRestoreReport() *RestoreReport {
	return &RestoreReport{Collections: make(map[string]*CollectionReport)}
}

func (r *RestoreReport) collection(name string, received int) *CollectionReport {
	c := &CollectionReport{Received: received}
	r.Collections[name] = c
	return c
}

func (r *RestoreReport) Inserted() int {
	total := 0
	for _, c := range r.Collections {
		total += c.Inserted
	}
	return total
}

func (r *RestoreReport) Dropped() int {
	total := 0
	for _, c := range r.Collections {
		total += c.DroppedTotal()
	}
	return total
}

// DroppedCollections satır kaybı olan koleksiyonları isim sırasıyla döner.
func (r *RestoreReport) DroppedCollections() []string {
	var names []string
	for name, c := range r.Collections {
		if c.DroppedTotal() > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
