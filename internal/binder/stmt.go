package binder

import "surgehdl/internal/ast"

// BindProceduralBlock binds every sensitivity-list event expression and
// every statement of an initial/final/always[_comb|_ff|_latch] block's body,
// returning the bound expressions in source order for a caller (a
// diagnostics-only walk today; nothing keys off the returned slice beyond
// its own tests) that wants them. Binding drives diagnostics through
// b.Reporter as a side effect regardless of whether the caller uses the
// return value.
func (b *Binder) BindProceduralBlock(ctx BindContext, pd *ast.ProceduralDecl) []*Expression {
	var out []*Expression
	sensCtx := ctx.WithFlags(EventExpressionContext).WithoutFlags(AllowDataType)
	for _, evID := range pd.Sensitivity {
		out = append(out, b.Bind(sensCtx, evID))
	}
	out = append(out, b.bindStmts(ctx, pd.Body)...)
	return out
}

// bindStmts binds each statement of a subroutine or procedural-block body in
// sequence.
func (b *Binder) bindStmts(ctx BindContext, stmts []ast.Stmt) []*Expression {
	var out []*Expression
	for i := range stmts {
		out = append(out, b.bindStmt(ctx, &stmts[i])...)
	}
	return out
}

// bindStmt binds one statement, recursing into if/else branches and
// begin/end blocks so every expression in a body is eventually reached.
func (b *Binder) bindStmt(ctx BindContext, st *ast.Stmt) []*Expression {
	switch st.Kind {
	case ast.StmtExpr:
		return []*Expression{b.bindStmtExpr(ctx, st)}
	case ast.StmtReturn:
		if !st.Expr.IsValid() {
			return nil
		}
		return []*Expression{b.Bind(ctx.WithoutFlags(AllowDataType), st.Expr)}
	case ast.StmtVarDecl:
		if !st.VarDecl.Initializer.IsValid() {
			return nil
		}
		declType := b.BindDataType(ctx, b.File.ID, st.VarDecl.TypeExpr)
		init := b.Bind(ctx.WithoutFlags(AllowDataType), st.VarDecl.Initializer)
		return []*Expression{b.ConvertAssignment(declType, init)}
	case ast.StmtIf:
		cond := b.Bind(ctx.WithoutFlags(AllowDataType), st.Expr)
		out := []*Expression{cond}
		out = append(out, b.bindStmts(ctx, st.Then)...)
		out = append(out, b.bindStmts(ctx, st.Else)...)
		return out
	case ast.StmtBlock:
		return b.bindStmts(ctx, st.Body)
	default:
		return nil
	}
}

// bindStmtExpr binds one expression-statement: a blocking or nonblocking
// assignment (both type-check identically — st.Nonblocking only distinguishes
// assignment timing, which this binder doesn't model) or a bare call.
func (b *Binder) bindStmtExpr(ctx BindContext, st *ast.Stmt) *Expression {
	return b.Bind(ctx.WithFlags(ProceduralAssignmentContext).WithoutFlags(AllowDataType), st.Expr)
}
