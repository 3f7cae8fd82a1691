// Package typeinfo tracks the schema types in scope while a document is walked.
package typeinfo

import (
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

// TypeInfo answers "what type is expected here" at every node of a walk.
// Lookups that fail push nil; TypeInfo never panics on unknown names.
type TypeInfo struct {
	schema *ast.Schema

	typeStack         []*ast.Type
	parentTypeStack   []*ast.Definition
	inputTypeStack    []*ast.Type
	fieldDefStack     []*ast.FieldDefinition
	defaultValueStack []*ast.Value

	directive *ast.DirectiveDefinition
	argument  *ast.ArgumentDefinition
	enumValue *ast.EnumValueDefinition
}

var _ visitor.TypeTracker = (*TypeInfo)(nil)

// New returns a TypeInfo for schema.
func New(schema *ast.Schema) *TypeInfo {
	return &TypeInfo{schema: schema}
}

// Schema returns the schema types are resolved against.
func (t *TypeInfo) Schema() *ast.Schema { return t.schema }

// Type returns the output type of the current field, fragment or operation.
func (t *TypeInfo) Type() *ast.Type { return top(t.typeStack) }

// ParentType returns the composite type whose selection set is being walked.
func (t *TypeInfo) ParentType() *ast.Definition { return top(t.parentTypeStack) }

// InputType returns the type expected for the current argument or value.
func (t *TypeInfo) InputType() *ast.Type { return top(t.inputTypeStack) }

// ParentInputType returns the type expected for the value enclosing the current one.
func (t *TypeInfo) ParentInputType() *ast.Type {
	if len(t.inputTypeStack) < 2 {
		return nil
	}
	return t.inputTypeStack[len(t.inputTypeStack)-2]
}

// FieldDef returns the definition of the current field.
func (t *TypeInfo) FieldDef() *ast.FieldDefinition { return top(t.fieldDefStack) }

// DefaultValue returns the default of the current argument or input field.
func (t *TypeInfo) DefaultValue() *ast.Value { return top(t.defaultValueStack) }

// Directive returns the definition of the current directive.
func (t *TypeInfo) Directive() *ast.DirectiveDefinition { return t.directive }

// Argument returns the definition of the current argument.
func (t *TypeInfo) Argument() *ast.ArgumentDefinition { return t.argument }

// EnumValue returns the definition of the current enum value.
func (t *TypeInfo) EnumValue() *ast.EnumValueDefinition { return t.enumValue }

// Depth returns the total size of the stacks. It is zero outside of a walk.
func (t *TypeInfo) Depth() int {
	return len(t.typeStack) + len(t.parentTypeStack) + len(t.inputTypeStack) +
		len(t.fieldDefStack) + len(t.defaultValueStack)
}

// Enter pushes the type state for the node under c.
func (t *TypeInfo) Enter(c *visitor.Cursor) {
	switch c.Kind {
	case visitor.SelectionSet:
		var parent *ast.Definition
		if def := Lookup(t.schema, t.Type()); def != nil && def.IsCompositeType() {
			parent = def
		}
		t.parentTypeStack = append(t.parentTypeStack, parent)

	case visitor.Field:
		field := c.Node.(*ast.Field)
		var fieldDef *ast.FieldDefinition
		var fieldType *ast.Type
		if parent := t.ParentType(); parent != nil {
			fieldDef = FieldDef(t.schema, parent, field.Name)
			if fieldDef != nil && IsOutputType(t.schema, fieldDef.Type) {
				fieldType = fieldDef.Type
			}
		}
		t.fieldDefStack = append(t.fieldDefStack, fieldDef)
		t.typeStack = append(t.typeStack, fieldType)

	case visitor.Directive:
		t.directive = nil
		if t.schema != nil {
			t.directive = t.schema.Directives[c.Node.(*ast.Directive).Name]
		}

	case visitor.OperationDefinition:
		var opType *ast.Type
		if root := RootType(t.schema, c.Node.(*ast.OperationDefinition).Operation); root != nil && root.Kind == ast.Object {
			opType = ast.NamedType(root.Name, nil)
		}
		t.typeStack = append(t.typeStack, opType)

	case visitor.InlineFragment, visitor.FragmentDefinition:
		var condition string
		if frag, ok := c.Node.(*ast.InlineFragment); ok {
			condition = frag.TypeCondition
		} else {
			condition = c.Node.(*ast.FragmentDefinition).TypeCondition
		}
		var outputType *ast.Type
		if condition != "" {
			outputType = ast.NamedType(condition, nil)
		} else if current := t.Type(); current != nil {
			outputType = ast.NamedType(current.Name(), nil)
		}
		if !IsOutputType(t.schema, outputType) {
			outputType = nil
		}
		t.typeStack = append(t.typeStack, outputType)

	case visitor.VariableDefinition:
		inputType := c.Node.(*ast.VariableDefinition).Type
		if !IsInputType(t.schema, inputType) {
			inputType = nil
		}
		t.typeStack = append(t.typeStack, inputType)
		t.inputTypeStack = append(t.inputTypeStack, inputType)

	case visitor.Argument:
		name := c.Node.(*ast.Argument).Name
		var argDef *ast.ArgumentDefinition
		if t.directive != nil {
			argDef = t.directive.Arguments.ForName(name)
		} else if fieldDef := t.FieldDef(); fieldDef != nil {
			argDef = fieldDef.Arguments.ForName(name)
		}
		t.argument = argDef
		var defaultValue *ast.Value
		var argType *ast.Type
		if argDef != nil {
			defaultValue = argDef.DefaultValue
			if IsInputType(t.schema, argDef.Type) {
				argType = argDef.Type
			}
		}
		t.defaultValueStack = append(t.defaultValueStack, defaultValue)
		t.inputTypeStack = append(t.inputTypeStack, argType)

	case visitor.ListValue:
		listType := Nullable(t.InputType())
		itemType := listType
		if IsList(listType) {
			itemType = listType.Elem
		}
		if !IsInputType(t.schema, itemType) {
			itemType = nil
		}
		t.defaultValueStack = append(t.defaultValueStack, nil)
		t.inputTypeStack = append(t.inputTypeStack, itemType)

	case visitor.ObjectField:
		var defaultValue *ast.Value
		var fieldType *ast.Type
		if objectType := Lookup(t.schema, t.InputType()); objectType != nil && objectType.Kind == ast.InputObject {
			if fieldDef := objectType.Fields.ForName(c.Node.(*ast.ChildValue).Name); fieldDef != nil {
				defaultValue = fieldDef.DefaultValue
				if IsInputType(t.schema, fieldDef.Type) {
					fieldType = fieldDef.Type
				}
			}
		}
		t.defaultValueStack = append(t.defaultValueStack, defaultValue)
		t.inputTypeStack = append(t.inputTypeStack, fieldType)

	case visitor.EnumValue:
		t.enumValue = nil
		if enumType := Lookup(t.schema, t.InputType()); enumType != nil && enumType.Kind == ast.Enum {
			t.enumValue = enumType.EnumValues.ForName(c.Node.(*ast.Value).Raw)
		}
	}
}

// Leave pops what Enter pushed for the node under c.
func (t *TypeInfo) Leave(c *visitor.Cursor) {
	switch c.Kind {
	case visitor.SelectionSet:
		pop(&t.parentTypeStack)
	case visitor.Field:
		pop(&t.fieldDefStack)
		pop(&t.typeStack)
	case visitor.Directive:
		t.directive = nil
	case visitor.OperationDefinition, visitor.InlineFragment, visitor.FragmentDefinition:
		pop(&t.typeStack)
	case visitor.VariableDefinition:
		pop(&t.typeStack)
		pop(&t.inputTypeStack)
	case visitor.Argument:
		t.argument = nil
		pop(&t.defaultValueStack)
		pop(&t.inputTypeStack)
	case visitor.ListValue, visitor.ObjectField:
		pop(&t.defaultValueStack)
		pop(&t.inputTypeStack)
	case visitor.EnumValue:
		t.enumValue = nil
	}
}

func top[T any](stack []T) T {
	var zero T
	if len(stack) == 0 {
		return zero
	}
	return stack[len(stack)-1]
}

func pop[T any](stack *[]T) {
	if n := len(*stack); n > 0 {
		*stack = (*stack)[:n-1]
	}
}
