package cache

import (
	"errors"
	"time"

	"mcpkg/internal/errkind"
	"mcpkg/internal/mc"
	"mcpkg/internal/mpcodec"
)

// translateCodecErr maps a *mpcodec.CodecError into errkind.Kind, mirroring
// internal/mc's own helper of the same name and shape.
func translateCodecErr(err error) error {
	if err == nil {
		return nil
	}
	var ce *mpcodec.CodecError
	if errors.As(err, &ce) {
		return errkind.Wrap(errkind.FromCodec(ce.Kind), err, ce.Message)
	}
	return err
}

type entry struct {
	key       string
	mod       mc.ModMetadata
	fetchedAt time.Time
	ttl       time.Duration
}

func (e entry) expired(now time.Time) bool {
	if e.ttl <= 0 {
		return false
	}
	return now.After(e.fetchedAt.Add(e.ttl))
}

func packEntry(e entry) ([]byte, error) {
	modBuf, err := e.mod.Pack()
	if err != nil {
		return nil, err
	}
	w := mpcodec.NewWriter()
	if err := w.MapBegin(6); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.WriteHeader(mpcodec.TagCacheEntry); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(2, e.key); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVBin(3, modBuf); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVInt64(4, e.fetchedAt.Unix()); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVInt64(5, int64(e.ttl/time.Second)); err != nil {
		return nil, translateCodecErr(err)
	}
	buf, err := w.Finish()
	if err != nil {
		return nil, translateCodecErr(err)
	}
	return buf, nil
}

func unpackEntry(buf []byte) (entry, error) {
	r, err := mpcodec.NewReader(buf)
	if err != nil {
		return entry{}, translateCodecErr(err)
	}
	if _, err := r.ExpectTag(mpcodec.TagCacheEntry); err != nil {
		return entry{}, translateCodecErr(err)
	}
	key, _, err := r.GetString(2)
	if err != nil {
		return entry{}, translateCodecErr(err)
	}
	modBuf, _, err := r.GetBin(3)
	if err != nil {
		return entry{}, translateCodecErr(err)
	}
	mod, err := mc.UnpackModMetadata(modBuf)
	if err != nil {
		return entry{}, err
	}
	fetchedAtUnix, _, err := r.GetInt64(4)
	if err != nil {
		return entry{}, translateCodecErr(err)
	}
	ttlSeconds, _, err := r.GetInt64(5)
	if err != nil {
		return entry{}, translateCodecErr(err)
	}
	return entry{
		key:       key,
		mod:       mod,
		fetchedAt: time.Unix(fetchedAtUnix, 0),
		ttl:       time.Duration(ttlSeconds) * time.Second,
	}, nil
}
