package oss

import (
	"mime/multipart"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const DefaultDocumentTitle = "Untitled Document"

var documentFileKey = regexp.MustCompile(`^document_(\d+)_files$`)

// DocumentFile is one "document_{i}_files" part with its "document_{i}_title".
type DocumentFile struct {
	Index  int
	Title  string
	Header *multipart.FileHeader
}

// CollectDocuments returns document parts ordered by index.
func CollectDocuments(form *multipart.Form) []DocumentFile {
	if form == nil || form.File == nil {
		return nil
	}
	var out []DocumentFile
	for key, fhs := range form.File {
		m := documentFileKey.FindStringSubmatch(key)
		if m == nil || len(fhs) == 0 || fhs[0] == nil {
			continue
		}
		idx, _ := strconv.Atoi(m[1])
		title := DefaultDocumentTitle
		if vals := form.Value["document_"+m[1]+"_title"]; len(vals) > 0 && strings.TrimSpace(vals[0]) != "" {
			title = vals[0]
		}
		out = append(out, DocumentFile{Index: idx, Title: title, Header: fhs[0]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// CollectNamedFiles returns the first file of each listed field present in form.
func CollectNamedFiles(form *multipart.Form, fields ...string) map[string]*multipart.FileHeader {
	out := map[string]*multipart.FileHeader{}
	if form == nil || form.File == nil {
		return out
	}
	for _, f := range fields {
		if fhs := form.File[f]; len(fhs) > 0 && fhs[0] != nil && fhs[0].Filename != "" {
			out[f] = fhs[0]
		}
	}
	return out
}
