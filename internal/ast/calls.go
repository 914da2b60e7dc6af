package ast

import (
	cerrors "github.com/elements-project/simplicityhl-go/internal/errors"
	"github.com/elements-project/simplicityhl-go/internal/jet"
	"github.com/elements-project/simplicityhl-go/internal/parse"
	"github.com/elements-project/simplicityhl-go/internal/tracker"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// analyzeCall implements the builtin call-analysis table.
func analyzeCall(scope *Scope, c *parse.Call, expected types.ResolvedType) (SingleExpression, error) {
	switch c.Name.Kind {
	case parse.CallJet:
		return analyzeJetCall(scope, c, expected)
	case parse.CallUnwrapLeft:
		return analyzeUnwrapSide(scope, c, expected, true)
	case parse.CallUnwrapRight:
		return analyzeUnwrapSide(scope, c, expected, false)
	case parse.CallIsNone:
		return analyzeIsNone(scope, c, expected)
	case parse.CallUnwrap:
		return analyzeUnwrap(scope, c, expected)
	case parse.CallAssert:
		return analyzeAssert(scope, c)
	case parse.CallPanic:
		return analyzePanic(scope, c, expected)
	case parse.CallDebug:
		return analyzeDebug(scope, c, expected)
	case parse.CallTypeCast:
		return analyzeTypeCast(scope, c, expected)
	case parse.CallFold:
		return analyzeFold(scope, c, expected)
	case parse.CallArrayFold:
		return analyzeArrayFold(scope, c, expected)
	case parse.CallForWhile:
		return analyzeForWhile(scope, c, expected)
	case parse.CallCustom:
		return analyzeCustomCall(scope, c, expected)
	}
	return SingleExpression{}, cerrors.Syntax(c.Span, "unrecognized call")
}

func analyzeJetCall(scope *Scope, c *parse.Call, expected types.ResolvedType) (SingleExpression, error) {
	if jet.Disallowed(c.Name.JetName) {
		return SingleExpression{}, cerrors.JetDisallowed(c.Span, c.Name.JetName)
	}
	d, ok := jet.Lookup(c.Name.JetName)
	if !ok {
		return SingleExpression{}, cerrors.JetDoesNotExist(c.Span, c.Name.JetName)
	}
	if !d.Target.Equal(expected) {
		return SingleExpression{}, cerrors.ExpressionTypeMismatch(c.Span, expected.String(), d.Target.String())
	}
	if len(c.Args) != d.Arity {
		return SingleExpression{}, cerrors.InvalidNumberOfArguments(c.Span, d.Arity, len(c.Args))
	}
	argTys := jetArgTypes(d)
	args := make([]Expression, len(c.Args))
	for i, a := range c.Args {
		ae, err := analyzeExpression(scope, a, argTys[i])
		if err != nil {
			return SingleExpression{}, err
		}
		args[i] = ae
	}
	cmr := scope.TrackCall(c.Span, tracker.NameJet, d.Target)
	name := CallName{Kind: CallJet, JetName: c.Name.JetName, JetArity: d.Arity, CMR: cmr, Tracked: true}
	call := &Call{Name: name, Args: args, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: expected, Span: c.Span}, nil
}

// jetArgTypes splits a jet's source tuple back into per-argument types,
// undoing the single-tuple packing jet.Descriptor.Source uses for arity > 1.
func jetArgTypes(d jet.Descriptor) []types.ResolvedType {
	if d.Arity <= 1 {
		if d.Arity == 0 {
			return nil
		}
		return []types.ResolvedType{d.Source}
	}
	return d.Source.TupleElems()
}

func analyzeUnwrapSide(scope *Scope, c *parse.Call, expected types.ResolvedType, isLeft bool) (SingleExpression, error) {
	var other types.ResolvedType
	var err error
	if c.Name.Type != nil {
		other, err = resolveType(scope, *c.Name.Type)
		if err != nil {
			return SingleExpression{}, err
		}
	}
	if len(c.Args) != 1 {
		return SingleExpression{}, cerrors.InvalidNumberOfArguments(c.Span, 1, len(c.Args))
	}
	var eitherTy types.ResolvedType
	var trackedName tracker.CallName
	if isLeft {
		eitherTy = types.Either(expected, other)
		trackedName = tracker.NameUnwrapLeft
	} else {
		eitherTy = types.Either(other, expected)
		trackedName = tracker.NameUnwrapRight
	}
	arg, err := analyzeExpression(scope, c.Args[0], eitherTy)
	if err != nil {
		return SingleExpression{}, err
	}
	cmr := scope.TrackCall(c.Span, trackedName, expected)
	var name CallName
	if isLeft {
		name = CallName{Kind: CallUnwrapLeft, RightTy: other, CMR: cmr, Tracked: true}
	} else {
		name = CallName{Kind: CallUnwrapRight, LeftTy: other, CMR: cmr, Tracked: true}
	}
	call := &Call{Name: name, Args: []Expression{arg}, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: expected, Span: c.Span}, nil
}

func analyzeIsNone(scope *Scope, c *parse.Call, expected types.ResolvedType) (SingleExpression, error) {
	if expected.Kind() != types.KindBoolean {
		return SingleExpression{}, cerrors.ExpressionTypeMismatch(c.Span, expected.String(), "bool")
	}
	if len(c.Args) != 1 {
		return SingleExpression{}, cerrors.InvalidNumberOfArguments(c.Span, 1, len(c.Args))
	}
	elemTy, err := resolveType(scope, *c.Name.Type)
	if err != nil {
		return SingleExpression{}, err
	}
	arg, err := analyzeExpression(scope, c.Args[0], types.Option(elemTy))
	if err != nil {
		return SingleExpression{}, err
	}
	name := CallName{Kind: CallIsNone, SomeTy: elemTy}
	call := &Call{Name: name, Args: []Expression{arg}, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: expected, Span: c.Span}, nil
}

func analyzeUnwrap(scope *Scope, c *parse.Call, expected types.ResolvedType) (SingleExpression, error) {
	if len(c.Args) != 1 {
		return SingleExpression{}, cerrors.InvalidNumberOfArguments(c.Span, 1, len(c.Args))
	}
	arg, err := analyzeExpression(scope, c.Args[0], types.Option(expected))
	if err != nil {
		return SingleExpression{}, err
	}
	cmr := scope.TrackCall(c.Span, tracker.NameUnwrap, expected)
	name := CallName{Kind: CallUnwrap, CMR: cmr, Tracked: true}
	call := &Call{Name: name, Args: []Expression{arg}, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: expected, Span: c.Span}, nil
}

func analyzeAssert(scope *Scope, c *parse.Call) (SingleExpression, error) {
	if len(c.Args) != 1 {
		return SingleExpression{}, cerrors.InvalidNumberOfArguments(c.Span, 1, len(c.Args))
	}
	arg, err := analyzeExpression(scope, c.Args[0], types.Boolean())
	if err != nil {
		return SingleExpression{}, err
	}
	cmr := scope.TrackCall(c.Span, tracker.NameAssert, types.Unit())
	name := CallName{Kind: CallAssert, CMR: cmr, Tracked: true}
	call := &Call{Name: name, Args: []Expression{arg}, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: types.Unit(), Span: c.Span}, nil
}

func analyzePanic(scope *Scope, c *parse.Call, expected types.ResolvedType) (SingleExpression, error) {
	if len(c.Args) != 0 {
		return SingleExpression{}, cerrors.InvalidNumberOfArguments(c.Span, 0, len(c.Args))
	}
	cmr := scope.TrackCall(c.Span, tracker.NamePanic, types.Unit())
	name := CallName{Kind: CallPanic, CMR: cmr, Tracked: true}
	call := &Call{Name: name, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: expected, Span: c.Span}, nil
}

func analyzeDebug(scope *Scope, c *parse.Call, expected types.ResolvedType) (SingleExpression, error) {
	if len(c.Args) != 1 {
		return SingleExpression{}, cerrors.InvalidNumberOfArguments(c.Span, 1, len(c.Args))
	}
	arg, err := analyzeExpression(scope, c.Args[0], expected)
	if err != nil {
		return SingleExpression{}, err
	}
	cmr := scope.TrackCall(c.Span, tracker.NameDebug, expected)
	name := CallName{Kind: CallDebug, CMR: cmr, Tracked: true}
	call := &Call{Name: name, Args: []Expression{arg}, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: expected, Span: c.Span}, nil
}

func analyzeTypeCast(scope *Scope, c *parse.Call, expected types.ResolvedType) (SingleExpression, error) {
	fromTy, err := inferCastSourceType(scope, c.Args[0])
	if err != nil {
		return SingleExpression{}, err
	}
	if !types.CastAllowed(fromTy, expected) {
		return SingleExpression{}, cerrors.InvalidCast(c.Span, fromTy.String(), expected.String())
	}
	arg, err := analyzeExpression(scope, c.Args[0], fromTy)
	if err != nil {
		return SingleExpression{}, err
	}
	name := CallName{Kind: CallTypeCast, FromTy: fromTy}
	call := &Call{Name: name, Args: []Expression{arg}, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: expected, Span: c.Span}, nil
}

// inferCastSourceType recovers the operand's own type ahead of checking
// structural cast-compatibility: a cast's source is always something
// whose type is independently knowable (a variable, a nested cast, or a
// custom function call; any other operand is rejected), since `e as T`
// does not otherwise constrain `e`.
func inferCastSourceType(scope *Scope, e parse.Expression) (types.ResolvedType, error) {
	if e.Single == nil {
		return types.ResolvedType{}, cerrors.Syntax(e.Span, "cast source must be a simple expression")
	}
	switch e.Single.Kind {
	case parse.SingleVariable:
		ty, ok := scope.GetVariable(e.Single.Name)
		if !ok {
			return types.ResolvedType{}, cerrors.UndefinedVariable(e.Single.Span, e.Single.Name)
		}
		return ty, nil
	case parse.SingleCall:
		if e.Single.Call.Name.Kind == parse.CallTypeCast {
			return resolveType(scope, *e.Single.Call.Name.Type)
		}
		if e.Single.Call.Name.Kind == parse.CallCustom {
			fn, ok := scope.GetFunction(e.Single.Call.Name.Custom)
			if !ok {
				return types.ResolvedType{}, cerrors.FunctionUndefined(e.Single.Span, e.Single.Call.Name.Custom)
			}
			return fn.Ret, nil
		}
	}
	return types.ResolvedType{}, cerrors.Syntax(e.Span, "cannot infer the source type of this cast")
}

func analyzeCustomCall(scope *Scope, c *parse.Call, expected types.ResolvedType) (SingleExpression, error) {
	fn, ok := scope.GetFunction(c.Name.Custom)
	if !ok {
		return SingleExpression{}, cerrors.FunctionUndefined(c.Span, c.Name.Custom)
	}
	if !fn.Ret.Equal(expected) {
		return SingleExpression{}, cerrors.ExpressionTypeMismatch(c.Span, expected.String(), fn.Ret.String())
	}
	if len(c.Args) != len(fn.Params) {
		return SingleExpression{}, cerrors.InvalidNumberOfArguments(c.Span, len(fn.Params), len(c.Args))
	}
	args := make([]Expression, len(c.Args))
	for i, a := range c.Args {
		ae, err := analyzeExpression(scope, a, fn.Params[i].Ty)
		if err != nil {
			return SingleExpression{}, err
		}
		args[i] = ae
	}
	name := CallName{Kind: CallCustom, Function: fn}
	call := &Call{Name: name, Args: args, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: expected, Span: c.Span}, nil
}

// analyzeFold implements fold::<f, N>(list, init): f must have the shape
// (E, A) -> A, list : List(E, N), init : A, result : A.
func analyzeFold(scope *Scope, c *parse.Call, expected types.ResolvedType) (SingleExpression, error) {
	fn, ok := scope.GetFunction(c.Name.Custom)
	if !ok {
		return SingleExpression{}, cerrors.FunctionUndefined(c.Span, c.Name.Custom)
	}
	if !isFoldable(fn, expected) {
		return SingleExpression{}, cerrors.FunctionNotFoldable(c.Span, fn.Name)
	}
	if len(c.Args) != 2 {
		return SingleExpression{}, cerrors.InvalidNumberOfArguments(c.Span, 2, len(c.Args))
	}
	elemTy := fn.Params[0].Ty
	list, err := analyzeExpression(scope, c.Args[0], types.List(elemTy, c.Name.Bound))
	if err != nil {
		return SingleExpression{}, err
	}
	init, err := analyzeExpression(scope, c.Args[1], expected)
	if err != nil {
		return SingleExpression{}, err
	}
	name := CallName{Kind: CallFold, Function: fn, ListBound: c.Name.Bound}
	call := &Call{Name: name, Args: []Expression{list, init}, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: expected, Span: c.Span}, nil
}

func isFoldable(fn *Function, acc types.ResolvedType) bool {
	return len(fn.Params) == 2 && fn.Params[1].Ty.Equal(acc) && fn.Ret.Equal(acc)
}

// analyzeArrayFold implements array_fold::<f, N>(arr, init), the same
// shape check as fold but over a fixed-size array.
func analyzeArrayFold(scope *Scope, c *parse.Call, expected types.ResolvedType) (SingleExpression, error) {
	fn, ok := scope.GetFunction(c.Name.Custom)
	if !ok {
		return SingleExpression{}, cerrors.FunctionUndefined(c.Span, c.Name.Custom)
	}
	if !isFoldable(fn, expected) {
		return SingleExpression{}, cerrors.FunctionNotFoldable(c.Span, fn.Name)
	}
	if len(c.Args) != 2 {
		return SingleExpression{}, cerrors.InvalidNumberOfArguments(c.Span, 2, len(c.Args))
	}
	elemTy := fn.Params[0].Ty
	arr, err := analyzeExpression(scope, c.Args[0], types.Array(elemTy, c.Name.Size))
	if err != nil {
		return SingleExpression{}, err
	}
	init, err := analyzeExpression(scope, c.Args[1], expected)
	if err != nil {
		return SingleExpression{}, err
	}
	name := CallName{Kind: CallArrayFold, Function: fn, ArraySize: c.Name.Size}
	call := &Call{Name: name, Args: []Expression{arr, init}, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: expected, Span: c.Span}, nil
}

// analyzeForWhile implements for_while::<f>(init, ctx): f must have the
// shape (A, C, u{W}) -> Either(B, A) with W in {1,2,4,8,16}; the result
// is Either(B, A).
func analyzeForWhile(scope *Scope, c *parse.Call, expected types.ResolvedType) (SingleExpression, error) {
	fn, ok := scope.GetFunction(c.Name.Custom)
	if !ok {
		return SingleExpression{}, cerrors.FunctionUndefined(c.Span, c.Name.Custom)
	}
	if expected.Kind() != types.KindEither {
		return SingleExpression{}, cerrors.ExpressionUnexpectedType(c.Span, "Either(B, A)")
	}
	width, ok := loopableCounterWidth(fn, expected)
	if !ok {
		return SingleExpression{}, cerrors.FunctionNotLoopable(c.Span, fn.Name)
	}
	if width >= 32 {
		return SingleExpression{}, cerrors.ForWhileWidthTooWide(c.Span, width)
	}
	if len(c.Args) != 2 {
		return SingleExpression{}, cerrors.InvalidNumberOfArguments(c.Span, 2, len(c.Args))
	}
	acc := expected.EitherRight()
	ctxTy := fn.Params[1].Ty
	init, err := analyzeExpression(scope, c.Args[0], acc)
	if err != nil {
		return SingleExpression{}, err
	}
	ctx, err := analyzeExpression(scope, c.Args[1], ctxTy)
	if err != nil {
		return SingleExpression{}, err
	}
	name := CallName{Kind: CallForWhile, Function: fn}
	call := &Call{Name: name, Args: []Expression{init, ctx}, Span: c.Span}
	return SingleExpression{Kind: SingleCall, Call: call, Ty: expected, Span: c.Span}, nil
}

// loopableCounterWidth checks fn : (A, C, u{W}) -> Either(B, A) against
// expected = Either(B, A) and returns W.
func loopableCounterWidth(fn *Function, expected types.ResolvedType) (int, bool) {
	if len(fn.Params) != 3 || !fn.Ret.Equal(expected) {
		return 0, false
	}
	a, c := fn.Params[0], fn.Params[2]
	if !a.Ty.Equal(expected.EitherRight()) {
		return 0, false
	}
	if c.Ty.Kind() != types.KindUInt {
		return 0, false
	}
	w := int(c.Ty.Width())
	switch w {
	case 1, 2, 4, 8, 16, 32:
		return w, true
	}
	return 0, false
}
