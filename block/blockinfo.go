package block

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/wire"
)

// BlockInfo carries the two optional flags that precede every block body,
// encoded as a short tagged-field stream terminated by field_num=0 (the
// same "tag, value, repeat, terminate" idiom this module reuses for
// session settings/parameters).
type BlockInfo struct {
	IsOverflows bool
	BucketNum   int32
}

const (
	blockInfoFieldIsOverflows = 1
	blockInfoFieldBucketNum   = 2
	blockInfoFieldTerminator  = 0
)

// defaultBlockInfo is what a block carries when BlockInfo is absent from
// the wire (pre-RevBlockInfo servers): no overflows, no bucket.
func defaultBlockInfo() BlockInfo {
	return BlockInfo{BucketNum: -1}
}

func readBlockInfo(r *wire.Reader, rev uint64) (BlockInfo, error) {
	info := defaultBlockInfo()
	if rev < chtype.RevBlockInfo {
		return info, nil
	}

	for {
		field, err := r.ReadUvarint()
		if err != nil {
			return BlockInfo{}, err
		}

		switch field {
		case blockInfoFieldTerminator:
			return info, nil
		case blockInfoFieldIsOverflows:
			v, err := r.ReadBool()
			if err != nil {
				return BlockInfo{}, err
			}
			info.IsOverflows = v
		case blockInfoFieldBucketNum:
			v, err := r.ReadFixed32()
			if err != nil {
				return BlockInfo{}, err
			}
			info.BucketNum = int32(v)
		default:
			return BlockInfo{}, errs.Protocol("block: unknown BlockInfo field %d", field)
		}
	}
}

func writeBlockInfo(w *wire.Writer, info BlockInfo, rev uint64) {
	if rev < chtype.RevBlockInfo {
		return
	}

	w.WriteUvarint(blockInfoFieldIsOverflows)
	w.WriteBool(info.IsOverflows)
	w.WriteUvarint(blockInfoFieldBucketNum)
	w.WriteFixed32(uint32(info.BucketNum))
	w.WriteUvarint(blockInfoFieldTerminator)
}
