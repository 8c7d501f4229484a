package exporters

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/player"
)

// maxLinkPayload bounds the inflated size of a link payload
const maxLinkPayload = 1 << 20

// SchemaLookup resolves the record schemas of a spec
type SchemaLookup func(spec sim.Spec) (player.Schemas, error)

// EncodeLink builds "<baseURL>#<data>" where data is the snapshot as a
// deterministically marshalled protobuf Struct, zlib compressed and base64url
// encoded.
func EncodeLink(baseURL string, snap *player.Snapshot) (string, error) {
	if snap == nil {
		return "", errors.DataUnavailable("build")
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode build")
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", errors.Wrap(err, "failed to encode build")
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode build")
	}
	payload, err := proto.MarshalOptions{Deterministic: true}.Marshal(st)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode build")
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return "", errors.Wrap(err, "failed to compress build")
	}
	if err := zw.Close(); err != nil {
		return "", errors.Wrap(err, "failed to compress build")
	}

	return baseURL + "#" + base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeLink restores the snapshot encoded by EncodeLink. The link may be a
// full URL or just its fragment. Record values are normalized against the
// schemas of the snapshot's spec.
func DecodeLink(link string, lookup SchemaLookup) (*player.Snapshot, error) {
	if lookup == nil {
		return nil, errors.InvalidArgument("schema lookup is required")
	}

	data := link
	if _, fragment, found := strings.Cut(link, "#"); found {
		data = fragment
	}
	if data == "" {
		return nil, errors.InvalidArgument("link has no build data")
	}

	compressed, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "link is not valid base64")
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "link is not compressed build data")
	}
	defer func() { _ = zr.Close() }()

	payload, err := io.ReadAll(io.LimitReader(zr, maxLinkPayload+1))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "link is not compressed build data")
	}
	if len(payload) > maxLinkPayload {
		return nil, errors.InvalidArgument("link payload is too large")
	}

	var st structpb.Struct
	if err := proto.Unmarshal(payload, &st); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "link does not contain a build")
	}
	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode build")
	}
	var snap player.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "link does not contain a build")
	}

	schemas, err := lookup(snap.Spec)
	if err != nil {
		return nil, err
	}
	if err := snap.Normalize(schemas); err != nil {
		return nil, err
	}
	return &snap, nil
}
