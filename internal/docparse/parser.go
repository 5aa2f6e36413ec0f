package docparse

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/regentgo/internal/ctxlog"
	"github.com/vk/regentgo/internal/descriptor"
)

var (
	// engineMu serializes parses: the engine stack below is shared and not
	// reentrant. Held for the whole push → walk → reset sequence.
	engineMu sync.Mutex

	tableOnce   sync.Once
	blockRules  map[string]*rule
	scalarRules map[string]*scalarRule

	// stack holds the object under construction at each nesting level. Reset
	// after every parse, failed or not.
	stack []any
)

// Parse reads one HCL descriptor document and appends every fully populated
// component, in document order, onto acc. On error nothing has been attached
// to acc's children beyond acc itself; callers discard the accumulator.
func Parse(ctx context.Context, filename string, src []byte, acc *descriptor.List) error {
	engineMu.Lock()
	defer engineMu.Unlock()
	defer func() { stack = stack[:0] }()

	tableOnce.Do(func() {
		blockRules, scalarRules = buildRules()
	})

	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return fmt.Errorf("parsing %s: %w", filename, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return fmt.Errorf("parsing %s: unexpected body type %T", filename, file.Body)
	}

	stack = append(stack, acc)
	return walkBody(ctx, body, "")
}

// walkBody processes one nesting level. Blocks are visited in document order;
// each matched rule instantiates its target, fills it from the block, and
// attaches it to the object below it on the stack once fully populated.
func walkBody(ctx context.Context, body *hclsyntax.Body, path string) error {
	if path == "" && len(body.Attributes) > 0 {
		for name := range body.Attributes {
			return fmt.Errorf("unexpected top-level attribute %q", name)
		}
	}

	for _, block := range body.Blocks {
		childPath := joinPath(path, block.Type)
		r, ok := blockRules[childPath]
		if !ok {
			return fmt.Errorf("unknown element %q at %s", block.Type, block.DefRange().String())
		}

		child := r.create()
		if len(block.Labels) > 0 {
			if _, err := descriptor.SetProperty(child, "name", cty.StringVal(block.Labels[0])); err != nil {
				return fmt.Errorf("%s: %w", childPath, err)
			}
		}
		if err := fillAttributes(ctx, child, block.Body, childPath); err != nil {
			return err
		}

		stack = append(stack, child)
		err := walkBody(ctx, block.Body, childPath)
		parent := stack[len(stack)-2]
		stack = stack[:len(stack)-1]
		if err != nil {
			return err
		}

		if err := r.attach(parent, child); err != nil {
			return fmt.Errorf("%s: %w", childPath, err)
		}
	}
	return nil
}

// fillAttributes copies the block's attributes onto the object under
// construction. A scalar rule owning the path claims its attribute first;
// everything else goes through the by-name property copy. Names that match
// no field are ignored — descriptor records do not model every key a
// document may carry.
func fillAttributes(ctx context.Context, target any, body *hclsyntax.Body, path string) error {
	logger := ctxlog.FromContext(ctx)

	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("%s: evaluating %q: %w", path, name, diags)
		}

		if sr, ok := scalarRules[path]; ok && name == sr.attr {
			if err := appendScalars(target, sr, val); err != nil {
				return fmt.Errorf("%s: %w", sr.path, err)
			}
			continue
		}

		matched, err := descriptor.SetProperty(target, name, val)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !matched {
			logger.Debug("Ignoring unmatched document attribute.", "path", path, "attribute", name)
		}
	}
	return nil
}

// appendScalars feeds each element of a string list value through the scalar
// rule's accumulation method.
func appendScalars(target any, sr *scalarRule, val cty.Value) error {
	if !val.Type().IsTupleType() && !val.Type().IsListType() {
		return fmt.Errorf("attribute %q must be a list of strings", sr.attr)
	}
	for _, elem := range val.AsValueSlice() {
		if elem.Type() != cty.String {
			return fmt.Errorf("attribute %q must contain only strings", sr.attr)
		}
		if err := sr.append(target, elem.AsString()); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "/" + child
}
