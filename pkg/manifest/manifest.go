package manifest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
	"sigs.k8s.io/yaml"
)

// Separator joins documents of a multi-document stream.
const Separator = "---\n"

// Template is a parsed document template.
type Template struct {
	tmpl *template.Template
}

// MustParse parses text with the sprig function map and panics on a syntax
// error. Templates are package-level constants, so a failure is a bug.
func MustParse(name, text string) *Template {
	return &Template{
		tmpl: template.Must(template.New(name).
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=error").
			Parse(text)),
	}
}

// Render executes the template with data and validates the result.
func (t *Template) Render(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", t.tmpl.Name(), err)
	}
	out := buf.String()
	if err := Validate(out); err != nil {
		return "", fmt.Errorf("rendered %s is invalid: %w", t.tmpl.Name(), err)
	}
	return out, nil
}

// FromObject serialises a typed API object to YAML. Server-populated fields
// (status, creationTimestamp) are dropped so the document is a pure desired
// state.
func FromObject(obj runtime.Object) (string, error) {
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return "", fmt.Errorf("failed to convert %T: %w", obj, err)
	}
	delete(content, "status")
	unstructured.RemoveNestedField(content, "metadata", "creationTimestamp")

	out, err := yaml.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %T: %w", obj, err)
	}
	if err := Validate(string(out)); err != nil {
		return "", err
	}
	return string(out), nil
}

// Join concatenates documents into one stream.
func Join(docs ...string) string {
	var b strings.Builder
	for i, d := range docs {
		if i > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(d)
		if !strings.HasSuffix(d, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Validate checks that every document in stream parses as YAML and names
// its apiVersion, kind and metadata.name. Empty documents are skipped, but a
// stream without any object is an error.
func Validate(stream string) error {
	objs, err := Objects(stream)
	if err != nil {
		return err
	}
	if len(objs) == 0 {
		return errors.New("no documents found")
	}
	for i, u := range objs {
		switch {
		case u.GetAPIVersion() == "":
			return fmt.Errorf("document %d: apiVersion is required", i)
		case u.GetKind() == "":
			return fmt.Errorf("document %d: kind is required", i)
		case u.GetName() == "":
			return fmt.Errorf("document %d (%s): metadata.name is required", i, u.GetKind())
		}
	}
	return nil
}

// Objects decodes stream into unstructured objects in document order.
func Objects(stream string) ([]*unstructured.Unstructured, error) {
	reader := utilyaml.NewYAMLReader(bufio.NewReader(strings.NewReader(stream)))

	var objs []*unstructured.Unstructured
	for {
		raw, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return objs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		obj := map[string]any{}
		if err := yaml.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("document %d: %w", len(objs), err)
		}
		if len(obj) == 0 {
			continue
		}
		objs = append(objs, &unstructured.Unstructured{Object: obj})
	}
}
