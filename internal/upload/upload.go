// Package upload screens bulk-upload files before anything reads their rows.
package upload

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
)

const (
	DefaultMaxSize  int64 = 10 << 20
	maxFilenameSize       = 255
)

// Rejection reasons.
const (
	ReasonEmpty     = "empty_file"
	ReasonTooLarge  = "file_too_large"
	ReasonFilename  = "unsafe_filename"
	ReasonExtension = "extension_not_allowed"
	ReasonMIME      = "content_type_not_allowed"
	ReasonRead      = "unreadable"
)

// Policy is the allow-list a file must satisfy. Extensions include the
// leading dot and are matched case-insensitively.
type Policy struct {
	MaxSize           int64
	AllowedExtensions []string
	AllowedMIMETypes  []string
}

func DefaultPolicy() Policy {
	return Policy{
		MaxSize:           DefaultMaxSize,
		AllowedExtensions: []string{".csv", ".xlsx", ".xls", ".pdf", ".png", ".jpg", ".jpeg"},
		AllowedMIMETypes: []string{
			"text/csv",
			"text/plain",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/vnd.ms-excel",
			"application/zip",
			"application/pdf",
			"image/png",
			"image/jpeg",
		},
	}
}

// File is a candidate upload. Content is read only as far as content
// sniffing needs.
type File struct {
	Name    string
	Size    int64
	Content io.Reader
}

type Accepted struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	MIME string `json:"mime"`
}

type Rejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

// Result keeps input order within each list. Both lists are non-nil.
type Result struct {
	Accepted []Accepted  `json:"accepted"`
	Rejected []Rejection `json:"rejected"`
}

type Validator struct {
	policy     Policy
	extensions map[string]bool
}

func NewValidator(p Policy) *Validator {
	if p.MaxSize <= 0 {
		p.MaxSize = DefaultMaxSize
	}
	exts := make(map[string]bool, len(p.AllowedExtensions))
	for _, e := range p.AllowedExtensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = true
	}
	return &Validator{policy: p, extensions: exts}
}

// Validate screens every file independently; one bad file never blocks the
// others.
func (v *Validator) Validate(files []File) Result {
	res := Result{Accepted: []Accepted{}, Rejected: []Rejection{}}
	for _, f := range files {
		acc, rej := v.Check(f)
		if rej != nil {
			res.Rejected = append(res.Rejected, *rej)
			continue
		}
		res.Accepted = append(res.Accepted, acc)
	}
	return res
}

// Check screens one file. Exactly one of the results is meaningful: a nil
// rejection means the file was accepted.
func (v *Validator) Check(f File) (Accepted, *Rejection) {
	reject := func(reason, detail string) (Accepted, *Rejection) {
		return Accepted{}, &Rejection{Name: f.Name, Reason: reason, Detail: detail}
	}

	if err := SafeFilename(f.Name); err != nil {
		return reject(ReasonFilename, err.Error())
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	if !v.extensions[ext] {
		return reject(ReasonExtension, fmt.Sprintf("extension %q is not allowed", ext))
	}
	if f.Size <= 0 {
		return reject(ReasonEmpty, "file is empty")
	}
	if f.Size > v.policy.MaxSize {
		return reject(ReasonTooLarge, fmt.Sprintf("file is %d bytes, limit is %d", f.Size, v.policy.MaxSize))
	}
	if f.Content == nil {
		return reject(ReasonRead, "no content")
	}

	mt, err := mimetype.DetectReader(f.Content)
	if err != nil {
		return reject(ReasonRead, err.Error())
	}
	if !v.mimeAllowed(mt) {
		return reject(ReasonMIME, fmt.Sprintf("detected content type %s is not allowed", mt.String()))
	}
	return Accepted{Name: f.Name, Size: f.Size, MIME: mt.String()}, nil
}

func (v *Validator) mimeAllowed(mt *mimetype.MIME) bool {
	for _, allowed := range v.policy.AllowedMIMETypes {
		if mt.Is(allowed) {
			return true
		}
	}
	return false
}

// SafeFilename rejects names that could escape the upload directory or
// confuse downstream tools.
func SafeFilename(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("filename is empty")
	case len(name) > maxFilenameSize:
		return fmt.Errorf("filename longer than %d bytes", maxFilenameSize)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("filename contains a path separator")
	case strings.Contains(name, ".."):
		return fmt.Errorf("filename contains '..'")
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("hidden filenames are not allowed")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("filename contains control characters")
		}
	}
	return nil
}
