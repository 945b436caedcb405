// Package assets provides the HTML page layouts a document is composed into.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - layouts compiled into the binary (go:embed)
//	    ├── FilesystemLoader  - layouts from a custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// A custom directory only needs the layouts it overrides:
//
//	{basePath}/
//	└── layouts/
//	    └── {name}.html
//
// # Security
//
// Layout names are validated before they touch a path, and FilesystemLoader
// resolves symlinks and verifies the file stays within basePath.
package assets
