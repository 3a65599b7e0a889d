package interpreter

import (
	"minipy/interpreter-go/pkg/ast"
	"minipy/interpreter-go/pkg/runtime"
)

// getAttribute reads from the receiver's own map. Objects do not fall back
// to their class here; only method calls consult the class.
func (i *Interpreter) getAttribute(receiver runtime.Value, member *ast.AttributeExpression) (runtime.Value, error) {
	name := memberName(member)
	val, found, err := runtime.GetAttr(name, receiver)
	if err != nil {
		return nil, classifyValueError(err)
	}
	if !found {
		return nil, unknownAttribute(receiver, name)
	}
	return val, nil
}

func (i *Interpreter) setAttribute(receiver runtime.Value, member *ast.AttributeExpression, value runtime.Value) error {
	if err := runtime.SetAttr(memberName(member), value, receiver); err != nil {
		return classifyValueError(err)
	}
	return nil
}

// lookupMethod resolves name through the receiver's class map only. Instance
// attributes of the same name are ignored.
func (i *Interpreter) lookupMethod(receiver runtime.Value, name string) (runtime.Value, error) {
	method, found, err := runtime.GetClassAttr(name, receiver)
	if err != nil {
		return nil, classifyValueError(err)
	}
	if !found {
		className := "?"
		if obj, ok := receiver.(*runtime.ObjectValue); ok {
			if class, err := runtime.ClassOf(obj); err == nil {
				className = class.Name
			}
		}
		return nil, newRuntimeError(UnknownMethod, "'%s' object has no method '%s'", className, name)
	}
	return method, nil
}

func unknownAttribute(receiver runtime.Value, name string) error {
	switch v := receiver.(type) {
	case *runtime.ClassValue:
		return newRuntimeError(UnknownAttribute, "type object '%s' has no attribute '%s'", v.Name, name)
	case *runtime.ObjectValue:
		if class, err := runtime.ClassOf(v); err == nil {
			return newRuntimeError(UnknownAttribute, "'%s' object has no attribute '%s'", class.Name, name)
		}
	}
	return newRuntimeError(UnknownAttribute, "'%s' object has no attribute '%s'", kindName(receiver), name)
}

func memberName(member *ast.AttributeExpression) string {
	if member == nil || member.Attribute == nil {
		return ""
	}
	return member.Attribute.Name
}
