package activate

import (
	"errors"
	"os"
	"path/filepath"

	"mcpkg/internal/errkind"
	"mcpkg/internal/fsutil"
	"mcpkg/internal/mc"
	"mcpkg/internal/mpcodec"
)

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

const manifestFileName = "mcpkg-manifest.bin"

func entryMap(e ActivatedEntry) map[int]interface{} {
	return map[int]interface{}{
		0: e.Slug,
		1: e.ModVersion,
		2: e.FileName,
		3: int64(e.Digest.Algo),
		4: e.Digest.Hex,
	}
}

func packManifest(report *Report) ([]byte, error) {
	w := mpcodec.NewWriter()
	if err := w.MapBegin(3); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.WriteHeader(mpcodec.TagActivationManifest); err != nil {
		return nil, translateCodecErr(err)
	}
	entries := make([]interface{}, len(report.Activated))
	for i, e := range report.Activated {
		entries[i] = entryMap(e)
	}
	if err := w.KVArray(2, entries); err != nil {
		return nil, translateCodecErr(err)
	}
	buf, err := w.Finish()
	if err != nil {
		return nil, translateCodecErr(err)
	}
	return buf, nil
}

// ReadManifest parses a manifest previously written by Activate under
// targetDir, for `mcpkg list`/`mcpkg remove` to consult.
func ReadManifest(targetDir string) ([]ActivatedEntry, error) {
	r, err := readManifestBytes(targetDir)
	if err != nil {
		return nil, err
	}
	reader, err := mpcodec.NewReader(r)
	if err != nil {
		return nil, translateCodecErr(err)
	}
	if _, err := reader.ExpectTag(mpcodec.TagActivationManifest); err != nil {
		return nil, translateCodecErr(err)
	}
	items, _, err := reader.GetArray(2)
	if err != nil {
		return nil, translateCodecErr(err)
	}
	out := make([]ActivatedEntry, 0, len(items))
	for _, item := range items {
		m, ok := mpcodec.AsMap(item)
		if !ok {
			return nil, errkind.New(errkind.Parse, "manifest entry: expected map")
		}
		slug, _ := mpcodec.AsString(m["0"])
		version, _ := mpcodec.AsString(m["1"])
		fileName, _ := mpcodec.AsString(m["2"])
		algo, _ := mpcodec.AsInt64(m["3"])
		hex, _ := mpcodec.AsString(m["4"])
		out = append(out, ActivatedEntry{
			Slug:       slug,
			ModVersion: version,
			FileName:   fileName,
			Digest:     digestFromWire(uint32(algo), hex),
		})
	}
	return out, nil
}

func writeManifest(targetDir string, buf []byte) error {
	return fsutil.WriteAtomicBytes(filepath.Join(targetDir, manifestFileName), buf)
}

func readManifestBytes(targetDir string) ([]byte, error) {
	buf, err := os.ReadFile(filepath.Join(targetDir, manifestFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errkind.New(errkind.NotFound, "no activation manifest in target directory")
		}
		return nil, errkind.Wrap(errkind.IO, err, "read activation manifest")
	}
	return buf, nil
}

// digestFromWire rebuilds a Digest from raw wire fields, falling back to a
// zero-value digest if the manifest somehow carries an invalid one rather
// than failing the whole read over one cosmetic field.
func digestFromWire(algo uint32, hex string) mc.Digest {
	d, err := mc.New(mc.DigestAlgo(algo), hex)
	if err != nil {
		return mc.Digest{}
	}
	return d
}
