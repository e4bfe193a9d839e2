package testserver

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/the127/tusk/internal/headers"
	"github.com/the127/tusk/internal/utils/apiError"
)

func (s *Server) serverInfo(w http.ResponseWriter, _ *http.Request) {
	extensions := make([]string, 0, len(s.extensions))
	for _, extension := range s.extensions {
		extensions = append(extensions, extension.String())
	}

	w.Header().Set(headers.TusResumable, headers.ProtocolVersion)
	w.Header().Set(headers.TusVersion, headers.ProtocolVersion)
	w.Header().Set(headers.TusExtension, strings.Join(extensions, ","))
	if s.maxSize != nil {
		w.Header().Set(headers.TusMaxSize, formatInt(*s.maxSize))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(headers.TusResumable) != headers.ProtocolVersion {
		apiError.HandleHttpError(w, apiError.ErrApiPreconditionFailed)
		return
	}

	length, err := strconv.ParseInt(r.Header.Get(headers.UploadLength), 10, 64)
	if err != nil || length < 0 {
		apiError.HandleHttpError(w, fmt.Errorf("invalid upload-length: %w", apiError.ErrApiBadRequest))
		return
	}

	if s.maxSize != nil && length > *s.maxSize {
		apiError.HandleHttpError(w, apiError.ErrApiEntityTooLarge)
		return
	}

	metadata, err := parseCreationMetadata(r.Header.Get(headers.UploadMetadata))
	if err != nil {
		apiError.HandleHttpError(w, err)
		return
	}

	upload := Upload{
		Id:       uuid.New(),
		Length:   length,
		Metadata: metadata,
	}

	err = s.uploads.Save(upload)
	if err != nil {
		apiError.HandleHttpError(w, err)
		return
	}

	w.Header().Set(headers.TusResumable, headers.ProtocolVersion)
	w.Header().Set(headers.Location, fmt.Sprintf("http://%s%s%s", r.Host, basePath, upload.Id))
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) inspect(w http.ResponseWriter, r *http.Request) {
	upload, err := s.uploadFromRequest(r)
	if err != nil {
		apiError.HandleHttpError(w, err)
		return
	}

	w.Header().Set(headers.TusResumable, headers.ProtocolVersion)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(headers.UploadOffset, formatInt(upload.Offset))
	w.Header().Set(headers.UploadLength, formatInt(upload.Length))
	if len(upload.Metadata) > 0 {
		w.Header().Set(headers.UploadMetadata, encodeInspectionMetadata(upload.Metadata))
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) patch(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(headers.ContentType) != headers.OffsetOctetStream {
		apiError.HandleHttpError(w, apiError.ErrApiUnsupportedMediaType)
		return
	}

	upload, err := s.uploadFromRequest(r)
	if err != nil {
		apiError.HandleHttpError(w, err)
		return
	}

	offset, err := strconv.ParseInt(r.Header.Get(headers.UploadOffset), 10, 64)
	if err != nil {
		apiError.HandleHttpError(w, fmt.Errorf("invalid upload-offset: %w", apiError.ErrApiBadRequest))
		return
	}

	if offset != upload.Offset {
		apiError.HandleHttpError(w, apiError.ErrApiOffsetMismatch)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		apiError.HandleHttpError(w, fmt.Errorf("reading body: %w", err))
		return
	}

	if upload.Offset+int64(len(body)) > upload.Length {
		apiError.HandleHttpError(w, fmt.Errorf("chunk exceeds upload-length: %w", apiError.ErrApiBadRequest))
		return
	}

	if s.maxPerPatch > 0 && int64(len(body)) > s.maxPerPatch {
		body = body[:s.maxPerPatch]
	}

	data := make([]byte, 0, len(upload.Data)+len(body))
	data = append(data, upload.Data...)
	upload.Data = append(data, body...)
	upload.Offset += int64(len(body))

	err = s.uploads.Save(*upload)
	if err != nil {
		apiError.HandleHttpError(w, err)
		return
	}

	w.Header().Set(headers.TusResumable, headers.ProtocolVersion)
	w.Header().Set(headers.UploadOffset, formatInt(upload.Offset))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) terminate(w http.ResponseWriter, r *http.Request) {
	upload, err := s.uploadFromRequest(r)
	if err != nil {
		apiError.HandleHttpError(w, err)
		return
	}

	err = s.uploads.Delete(upload.Id)
	if err != nil {
		apiError.HandleHttpError(w, err)
		return
	}

	w.Header().Set(headers.TusResumable, headers.ProtocolVersion)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) uploadFromRequest(r *http.Request) (*Upload, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return nil, apiError.ErrApiUploadNotFound
	}

	return s.uploads.Single(id)
}

// parseCreationMetadata reads the "key base64(value)" pairs of a creation
// request.
func parseCreationMetadata(value string) (map[string]string, error) {
	if value == "" {
		return nil, nil
	}

	metadata := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		key, encoded, _ := strings.Cut(strings.TrimSpace(pair), " ")
		if key == "" {
			return nil, fmt.Errorf("empty metadata key: %w", apiError.ErrApiBadRequest)
		}

		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("metadata value of %s is not base64: %w", key, apiError.ErrApiBadRequest)
		}

		metadata[key] = string(decoded)
	}

	return metadata, nil
}

// encodeInspectionMetadata is the inverse of headers.DecodeMetadata.
func encodeInspectionMetadata(metadata map[string]string) string {
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]string, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, key+":"+metadata[key])
	}

	return base64.StdEncoding.EncodeToString([]byte(strings.Join(entries, ";")))
}
