package wizard

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/pkg/models"
)

const manifestPath = "META-INF/MANIFEST.MF"

// Manifest headers carrying connector bundle metadata, in lookup order
var (
	bundleNameHeaders    = []string{"ConnectorBundle-Name", "Bundle-SymbolicName", "Implementation-Title"}
	bundleVersionHeaders = []string{"ConnectorBundle-Version", "Bundle-Version", "Implementation-Version"}
	bundleClassHeaders   = []string{"ConnectorBundle-ClassName", "Main-Class"}
)

// bundleDescriptor is the JSON form of a bundle description
type bundleDescriptor struct {
	BundleName string `json:"bundleName"`
	Version    string `json:"version"`
	ClassName  string `json:"className"`
}

// ParseManifest reads the main section of a JAR manifest. Continuation
// lines start with a single space.
func ParseManifest(data []byte) (map[string]string, error) {
	headers := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var last string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			if last == "" {
				return nil, fmt.Errorf("continuation line without header")
			}
			headers[last] += line[1:]
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed manifest line %q", line)
		}
		last = strings.TrimSpace(key)
		headers[last] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return headers, nil
}

func firstHeader(headers map[string]string, names []string) string {
	for _, n := range names {
		if v := headers[n]; v != "" {
			// Bundle-SymbolicName may carry directives
			v, _, _ = strings.Cut(v, ";")
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// ExtractBundleInfo reads bundle metadata from a connector JAR or a JSON
// bundle description.
func ExtractBundleInfo(filename string, data []byte) (*models.BundleInfo, error) {
	var info *models.BundleInfo
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jar", ".zip":
		headers, err := readJarManifest(data)
		if err != nil {
			return nil, manifestError(filename, err)
		}
		info = &models.BundleInfo{
			BundleName: firstHeader(headers, bundleNameHeaders),
			Version:    firstHeader(headers, bundleVersionHeaders),
			ClassName:  firstHeader(headers, bundleClassHeaders),
		}
	case ".json":
		var d bundleDescriptor
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, manifestError(filename, err)
		}
		info = &models.BundleInfo{BundleName: d.BundleName, Version: d.Version, ClassName: d.ClassName}
	default:
		return nil, manifestError(filename, fmt.Errorf("not a bundle"))
	}

	if info.BundleName == "" || info.Version == "" {
		return nil, manifestError(filename, fmt.Errorf("bundle name or version missing"))
	}
	if v, ok := NormalizeVersion(info.Version); ok {
		info.Version = v
	}
	return info, nil
}

func readJarManifest(data []byte) (map[string]string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a valid archive: %w", err)
	}
	for _, file := range reader.File {
		if !strings.EqualFold(file.Name, manifestPath) {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		return ParseManifest(content)
	}
	return nil, fmt.Errorf("%s not found", manifestPath)
}

func manifestError(filename string, err error) error {
	return apperrors.WrapError(err, apperrors.ErrorTypeParsing, apperrors.CodeManifestInvalid,
		"cannot read bundle metadata").WithContext("file", filename)
}

// UploadFile is the connector file attached to the upload
type UploadFile struct {
	Name    string
	Content []byte
	// Bundle is set when metadata could be extracted
	Bundle *models.BundleInfo
	// ParseError is why metadata extraction failed, if it did
	ParseError error
}

// NewUploadFile wraps an uploaded file. A file whose metadata cannot be
// parsed is kept as an opaque attachment.
func NewUploadFile(name string, content []byte) *UploadFile {
	f := &UploadFile{Name: filepath.Base(name), Content: content}
	f.Bundle, f.ParseError = ExtractBundleInfo(name, content)
	return f
}

// Opaque reports whether the file is sent as plain bytes
func (f *UploadFile) Opaque() bool { return f.Bundle == nil }
