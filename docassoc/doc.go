// Package docassoc decides, for every documentable declaration in a C++
// source file, whether a documentation comment is associated with it.
//
// It works without a semantic front end: there is no preprocessing, no
// macro expansion and no type resolution. Template-heavy code is handled by
// recognizing declaration shapes from token windows.
//
// # Pipeline
//
// [Engine.Analyze] runs four stages, strictly forward:
//
//  1. Scan: [Scan] splits source text into [Unit] values. Comments and
//     preprocessor directives are units of their own; everything else is
//     grouped into statements, with class and namespace bodies scanned
//     into child units. String literals (including raw strings) are
//     skipped so comment markers inside them are never comments.
//
//  2. Classify: [Classify] maps a statement to a [Declaration] with one of
//     the closed set of [Kind] values, or reports [ErrNotDocumentable]
//     for shapes such as variables and friend declarations, or
//     [ErrAmbiguous] when no shape matches. Stacked template headers are
//     counted into [Declaration.TemplateHeaderDepth]; an empty template<>
//     marks an explicit specialization and is not counted.
//
//  3. Resolve: comments are associated in source order. A declaration
//     takes the eligible comment directly before it; failing that, a
//     trailing comment directly after it; failing that, a nested forward
//     declaration inherits the comment of its enclosing class, and an
//     out-of-line member definition is covered by a documented in-class
//     declaration recorded in the [Registry]. A comment is consumed by at
//     most one declaration.
//
//  4. Emit: [Emit] builds an immutable [Result] keyed by qualified name and
//     line, with aggregate [Stats].
//
// # Comment styles
//
// Only the following forms are eligible:
//
//	/** ... */   javadoc
//	/*! ... */   qt
//	///< ...     trailing line
//	//!< ...     trailing line
//	/**< ... */  trailing block
//	/*!< ... */  trailing block
//
// Trailing forms bind to the declaration before them first. A trailing
// block that no earlier declaration takes documents the next one. Any
// other comment, and any preprocessor directive, is a barrier: a
// declaration directly after it is not documented by an earlier comment.
//
// # Usage
//
//	engine := docassoc.NewEngine(docassoc.WithLogger(logger))
//
//	res, err := engine.Analyze(src)
//	if err != nil {
//	    return err
//	}
//
//	for _, a := range res.Undocumented() {
//	    fmt.Println(a.Declaration.QualifiedName, a.Declaration.Line())
//	}
package docassoc
