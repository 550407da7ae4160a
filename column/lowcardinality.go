package column

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/wire"
)

// keySerializationVersion is the only key_serialization_version value this
// module writes or accepts: "shared dictionaries with additional keys",
// matching the real server's sole supported mode (§4.4.8).
const keySerializationVersion = 1

// hasAdditionalKeysBit is set in every index_serialization_type this module
// writes, per §4.4.8's "a fixed bit flags has additional keys and
// must be set on write".
const hasAdditionalKeysBit = uint64(1) << 9

const indexWidthMask = 0x07

// lowCardinalityColumn implements LowCardinality(T). dict holds T' (T
// stripped of its outer Nullable) with two reserved leading entries: index
// 0 is the null placeholder when nullable is true, index 1 is T''s default
// value, used whenever a row's index would otherwise fall on an unused
// reserved slot (§3). Real values start at dictionary index 2 and
// are deduplicated through tracker.
type lowCardinalityColumn struct {
	dict     Column
	nullable bool
	indices  []uint64
	tracker  *dictTracker
}

// NewLowCardinalityColumn wraps dict (an empty column of T', T stripped of
// its outer Nullable) as a LowCardinality(T) column. nullable selects
// whether index 0 represents a null row.
func NewLowCardinalityColumn(dict Column, nullable bool) Column {
	c := &lowCardinalityColumn{dict: dict, nullable: nullable, tracker: newDictTracker()}
	c.dict.AppendDefault()
	c.dict.AppendDefault()

	return c
}

func (c *lowCardinalityColumn) Type() chtype.Type {
	elem := c.dict.Type()
	if c.nullable {
		elem = chtype.Nullable(elem)
	}

	return chtype.LowCardinality(elem)
}

func (c *lowCardinalityColumn) Len() int { return len(c.indices) }

func (c *lowCardinalityColumn) AppendDefault() {
	if c.nullable {
		c.indices = append(c.indices, 0)
	} else {
		c.indices = append(c.indices, 1)
	}
}

func (c *lowCardinalityColumn) Clear() {
	c.indices = c.indices[:0]
	c.dict.Clear()
	c.dict.AppendDefault()
	c.dict.AppendDefault()
	c.tracker.reset()
}

func (c *lowCardinalityColumn) Reserve(n int) {
	if cap(c.indices)-len(c.indices) < n {
		grown := make([]uint64, len(c.indices), len(c.indices)+n)
		copy(grown, c.indices)
		c.indices = grown
	}
}

func (c *lowCardinalityColumn) LoadPrefix(r *wire.Reader, rows int) error {
	v, err := r.ReadFixed64()
	if err != nil {
		return errs.Protocol("lowcardinality key_serialization_version: %v", err)
	}
	if v != keySerializationVersion {
		return errs.Protocol("lowcardinality: unsupported key_serialization_version %d", v)
	}

	return nil
}

func (c *lowCardinalityColumn) SavePrefix(w *wire.Writer) error {
	w.WriteFixed64(keySerializationVersion)
	return nil
}

func (c *lowCardinalityColumn) LoadBody(r *wire.Reader, rows int) error {
	indexType, err := r.ReadFixed64()
	if err != nil {
		return errs.Protocol("lowcardinality index_serialization_type: %v", err)
	}
	widthSel := indexType & indexWidthMask
	if widthSel > 3 {
		return errs.Protocol("lowcardinality: invalid index width selector %d", widthSel)
	}

	numberOfKeys, err := r.ReadFixed64()
	if err != nil {
		return errs.Protocol("lowcardinality number_of_keys: %v", err)
	}

	c.dict.Clear()
	if err := c.dict.LoadPrefix(r, int(numberOfKeys)); err != nil {
		return err
	}
	if err := c.dict.LoadBody(r, int(numberOfKeys)); err != nil {
		return err
	}

	numberOfRows, err := r.ReadFixed64()
	if err != nil {
		return errs.Protocol("lowcardinality number_of_rows: %v", err)
	}

	indices := make([]uint64, numberOfRows)
	for i := range indices {
		v, err := readIndex(r, widthSel)
		if err != nil {
			return errs.Protocol("lowcardinality index data: %v", err)
		}
		indices[i] = v
	}

	c.indices = indices
	c.rebuildTracker()

	return nil
}

func (c *lowCardinalityColumn) SaveBody(w *wire.Writer) error {
	widthSel := widthForKeys(c.dict.Len())

	w.WriteFixed64(widthSel | hasAdditionalKeysBit)
	w.WriteFixed64(uint64(c.dict.Len()))

	if err := c.dict.SavePrefix(w); err != nil {
		return err
	}
	if err := c.dict.SaveBody(w); err != nil {
		return err
	}

	w.WriteFixed64(uint64(len(c.indices)))
	for _, idx := range c.indices {
		writeIndex(w, widthSel, idx)
	}

	return nil
}

func (c *lowCardinalityColumn) Slice(begin, n int) (Column, error) {
	if begin < 0 || n < 0 || begin+n > len(c.indices) {
		return nil, errs.InvalidInput("lowcardinality column slice [%d,%d) out of range len=%d", begin, begin+n, len(c.indices))
	}

	emptyDict, err := c.dict.Slice(0, 0)
	if err != nil {
		return nil, err
	}
	out := &lowCardinalityColumn{dict: emptyDict, nullable: c.nullable, tracker: newDictTracker()}
	out.dict.AppendDefault()
	out.dict.AppendDefault()

	remap := map[uint64]uint64{0: 0, 1: 1}
	for i := begin; i < begin+n; i++ {
		idx := c.indices[i]
		if idx < 2 {
			out.indices = append(out.indices, idx)
			continue
		}
		if newIdx, ok := remap[idx]; ok {
			out.indices = append(out.indices, newIdx)
			continue
		}

		row, err := c.dict.Slice(int(idx), 1)
		if err != nil {
			return nil, err
		}
		if err := out.dict.AppendFrom(row, 0, 1); err != nil {
			return nil, err
		}
		newIdx := uint64(out.dict.Len() - 1)
		remap[idx] = newIdx
		out.indices = append(out.indices, newIdx)
		out.tracker.record(encodeColumnRow(row), int32(newIdx))
	}

	return out, nil
}

func (c *lowCardinalityColumn) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*lowCardinalityColumn)
	if !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into LowCardinality column")
	}
	if begin < 0 || n < 0 || begin+n > len(o.indices) {
		return errs.InvalidInput("lowcardinality column AppendFrom range [%d,%d) out of bounds len=%d", begin, begin+n, len(o.indices))
	}

	for i := begin; i < begin+n; i++ {
		idx := o.indices[i]
		if idx < 2 {
			c.indices = append(c.indices, idx)
			continue
		}
		row, err := o.dict.Slice(int(idx), 1)
		if err != nil {
			return err
		}
		if err := c.AppendValue(row); err != nil {
			return err
		}
	}

	return nil
}

// Dict returns the dictionary column (T', excluding the outer Nullable).
func (c *lowCardinalityColumn) Dict() Column { return c.dict }

// IsNullable reports whether index 0 represents a null row.
func (c *lowCardinalityColumn) IsNullable() bool { return c.nullable }

// AppendNull appends a null row. Valid only when IsNullable is true.
func (c *lowCardinalityColumn) AppendNull() error {
	if !c.nullable {
		return errs.InvalidInput("lowcardinality column: AppendNull on non-nullable column")
	}
	c.indices = append(c.indices, 0)

	return nil
}

// AppendValue appends one logical row holding value, a single-row column of
// T' (the dictionary's element type). The value is deduplicated against the
// existing dictionary via tracker before growing it (§4.4.8).
func (c *lowCardinalityColumn) AppendValue(value Column) error {
	if value.Len() != 1 {
		return errs.InvalidInput("lowcardinality column: AppendValue requires a single-row column, got len=%d", value.Len())
	}

	encoded := encodeColumnRow(value)
	if idx, ok := c.tracker.lookup(encoded, c.dictRowBytes); ok {
		c.indices = append(c.indices, uint64(idx))
		return nil
	}

	idx := int32(c.dict.Len())
	if err := c.dict.AppendFrom(value, 0, 1); err != nil {
		return err
	}
	c.tracker.record(encoded, idx)
	c.indices = append(c.indices, uint64(idx))

	return nil
}

func (c *lowCardinalityColumn) dictRowBytes(idx int32) []byte {
	row, err := c.dict.Slice(int(idx), 1)
	if err != nil {
		return nil
	}

	return encodeColumnRow(row)
}

func (c *lowCardinalityColumn) rebuildTracker() {
	c.tracker.reset()
	for idx := 2; idx < c.dict.Len(); idx++ {
		row, err := c.dict.Slice(idx, 1)
		if err != nil {
			continue
		}
		c.tracker.record(encodeColumnRow(row), int32(idx))
	}
}

func encodeColumnRow(col Column) []byte {
	w := wire.NewWriter()
	defer w.Release()

	_ = col.SaveBody(w)

	return append([]byte(nil), w.Bytes()...)
}

// widthForKeys returns the index_serialization_type width selector: the
// narrowest of {0,1,2,3} able to represent numberOfKeys-1.
func widthForKeys(numberOfKeys int) uint64 {
	maxIndex := uint64(0)
	if numberOfKeys > 0 {
		maxIndex = uint64(numberOfKeys - 1)
	}

	switch {
	case maxIndex < 1<<8:
		return 0
	case maxIndex < 1<<16:
		return 1
	case maxIndex < 1<<32:
		return 2
	default:
		return 3
	}
}

func readIndex(r *wire.Reader, widthSel uint64) (uint64, error) {
	switch widthSel {
	case 0:
		v, err := r.ReadFixed8()
		return uint64(v), err
	case 1:
		v, err := r.ReadFixed16()
		return uint64(v), err
	case 2:
		v, err := r.ReadFixed32()
		return uint64(v), err
	default:
		return r.ReadFixed64()
	}
}

func writeIndex(w *wire.Writer, widthSel, v uint64) {
	switch widthSel {
	case 0:
		w.WriteFixed8(uint8(v))
	case 1:
		w.WriteFixed16(uint16(v))
	case 2:
		w.WriteFixed32(uint32(v))
	default:
		w.WriteFixed64(v)
	}
}
