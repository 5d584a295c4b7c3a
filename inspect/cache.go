package inspect

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/pablor21/godecor/signature"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CacheHeader contains metadata about the cache file
type CacheHeader struct {
	Magic     string `json:"magic"`
	Version   uint8  `json:"version"`
	Timestamp int64  `json:"timestamp"`
	Checksum  uint32 `json:"checksum"`
}

// CacheFile is a gzip-compressed JSON file containing the serialized
// inspection result
type CacheFile struct {
	Header CacheHeader                          `json:"header"`
	Funcs  map[string]*signature.SerializedFunc `json:"funcs"`
}

const (
	CacheMagic   = "GDECOR"
	CacheVersion = 1
)

// WriteCache writes the inspection result to a gzip-compressed JSON cache file
func WriteCache(filename string, result *Result) error {
	if filename == "" {
		return fmt.Errorf("cache filename cannot be empty")
	}
	if result == nil {
		return fmt.Errorf("inspection result cannot be nil")
	}

	// Ensure directory exists
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
		}
	}

	cache := &CacheFile{
		Header: CacheHeader{
			Magic:     CacheMagic,
			Version:   CacheVersion,
			Timestamp: time.Now().Unix(),
		},
		Funcs: make(map[string]*signature.SerializedFunc, result.Len()),
	}
	for _, id := range result.Keys() {
		f, _ := result.Get(id)
		cache.Funcs[id] = f.Serialize().(*signature.SerializedFunc)
	}

	// Checksum over the descriptor data only
	funcBytes, err := json.Marshal(cache.Funcs)
	if err != nil {
		return fmt.Errorf("failed to marshal descriptors: %w", err)
	}
	cache.Header.Checksum = calculateChecksum(funcBytes)

	cacheJSON, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create cache file %s: %w", filename, err)
	}
	defer func() { _ = file.Close() }()

	gzipWriter := gzip.NewWriter(file)
	defer func() { _ = gzipWriter.Close() }()

	if _, err := gzipWriter.Write(cacheJSON); err != nil {
		_ = os.Remove(filename)
		return fmt.Errorf("failed to write compressed cache: %w", err)
	}

	return nil
}

// ReadCache reads an inspection result from a gzip-compressed JSON cache file
func ReadCache(filename string) (*Result, error) {
	if filename == "" {
		return nil, fmt.Errorf("cache filename cannot be empty")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("cache file not found: %s", filename)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat cache file: %w", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache file %s: %w", filename, err)
	}
	defer func() { _ = file.Close() }()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer func() { _ = gzipReader.Close() }()

	var cache CacheFile
	decoder := json.NewDecoder(gzipReader)
	if err := decoder.Decode(&cache); err != nil {
		return nil, fmt.Errorf("failed to decode cache: %w", err)
	}

	if cache.Header.Magic != CacheMagic {
		return nil, fmt.Errorf("invalid cache magic: expected %s, got %s", CacheMagic, cache.Header.Magic)
	}
	if cache.Header.Version != CacheVersion {
		return nil, fmt.Errorf("incompatible cache version: expected %d, got %d", CacheVersion, cache.Header.Version)
	}

	result := NewResult()
	for _, sf := range cache.Funcs {
		result.Add(signature.FromSerialized(sf))
	}
	return result, nil
}

// IsCacheValid checks if a cache file exists and is a valid cache file
func IsCacheValid(filename string) bool {
	if filename == "" {
		return false
	}

	info, err := os.Stat(filename)
	if os.IsNotExist(err) || err != nil {
		return false
	}
	if info.IsDir() || info.Size() == 0 {
		return false
	}

	_, err = ReadCache(filename)
	return err == nil
}

// CacheAge returns the age of a cache file in seconds, -1 if it doesn't exist
func CacheAge(filename string) int64 {
	if filename == "" {
		return -1
	}

	info, err := os.Stat(filename)
	if os.IsNotExist(err) || err != nil {
		return -1
	}

	return time.Now().Unix() - info.ModTime().Unix()
}

// InvalidateCache removes a cache file
func InvalidateCache(filename string) error {
	if filename == "" {
		return fmt.Errorf("cache filename cannot be empty")
	}
	if !IsCacheValid(filename) {
		return nil // already doesn't exist
	}
	return os.Remove(filename)
}

// ShouldUseCache determines if cached results should be used
func ShouldUseCache(cacheFile string, maxAgeSeconds int64, sourceFiles ...string) bool {
	if !IsCacheValid(cacheFile) {
		return false
	}

	if maxAgeSeconds > 0 {
		age := CacheAge(cacheFile)
		if age < 0 || age > maxAgeSeconds {
			return false
		}
	}

	cacheInfo, err := os.Stat(cacheFile)
	if err != nil {
		return false
	}
	cacheModTime := cacheInfo.ModTime()

	for _, sourceFile := range sourceFiles {
		sourceInfo, err := os.Stat(sourceFile)
		if err != nil {
			return false
		}
		if sourceInfo.ModTime().After(cacheModTime) {
			return false
		}
	}

	return true
}

// calculateChecksum calculates a simple checksum for data validation
func calculateChecksum(data []byte) uint32 {
	var checksum uint32
	for _, b := range data {
		checksum = ((checksum << 1) | (checksum >> 31)) ^ uint32(b)
	}
	return checksum
}
