// Package classify turns a source path into a types.Classification.
//
// Classification is purely path based:
//
//   - `.js` is a Script, `.scss` a Stylesheet, `.json` StructuredData,
//     `.html` Markup and `.pntr` a Pointer; anything else is Opaque
//   - extensions are compared case-insensitively
//   - any path containing "plugin" (in any segment, any case) is excluded:
//     its transformable kinds are copied verbatim instead; pointers still
//     redirect
//
// Stylesheets whose basename starts with "_" are partials. They are only
// valid as includes and never compiled on their own.
package classify
