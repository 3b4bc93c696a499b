package passes

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-payloadgen/pkg/annotate"
	"github.com/goliatone/go-payloadgen/pkg/jsonschema"
)

func relationshipMeta(name, relationTo string, hasMany bool) map[string]any {
	return map[string]any{
		"name":       name,
		"type":       "relationship",
		"hasMany":    hasMany,
		"relationTo": relationTo,
	}
}

func unionOf(slug string) map[string]any {
	return map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"$ref": "#/definitions/" + slug},
		},
	}
}

func definitionProps(doc map[string]any, name string) map[string]any {
	return jsonschema.Object(jsonschema.Object(jsonschema.Object(doc, "definitions"), name), "properties")
}

func TestPrune(t *testing.T) {
	newDoc := func() map[string]any {
		return map[string]any{
			"properties": map[string]any{
				"auth": map[string]any{"$ref": "#/definitions/auth"},
				"collections": map[string]any{
					"properties": map[string]any{
						"posts":                    map[string]any{"$ref": "#/definitions/posts"},
						"media":                    map[string]any{"$ref": "#/definitions/media"},
						"redirects":                map[string]any{"$ref": "#/definitions/redirects"},
						"payload-locked-documents": map[string]any{"$ref": "#/definitions/payload-locked-documents"},
					},
					"required": []any{"posts", "media", "redirects", "payload-locked-documents"},
				},
			},
			"required": []any{"collections", "auth"},
			"definitions": map[string]any{
				"auth":                     map[string]any{},
				"posts":                    map[string]any{},
				"media":                    map[string]any{},
				"redirects":                map[string]any{},
				"payload-locked-documents": map[string]any{},
			},
		}
	}

	t.Run("default", func(t *testing.T) {
		doc := Prune(newDoc(), PruneOptions{})

		want := map[string]any{
			"properties": map[string]any{
				"collections": map[string]any{
					"properties": map[string]any{
						"posts": map[string]any{"$ref": "#/definitions/posts"},
						"media": map[string]any{"$ref": "#/definitions/media"},
					},
					"required": []any{"posts", "media"},
				},
			},
			"required": []any{"collections"},
			"definitions": map[string]any{
				"posts": map[string]any{},
				"media": map[string]any{},
			},
		}
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Fatalf("pruned document mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("drop media", func(t *testing.T) {
		doc := Prune(newDoc(), PruneOptions{DropMedia: true})

		if _, ok := jsonschema.Object(doc, "definitions")["media"]; ok {
			t.Fatalf("media definition should be removed")
		}
		collections := jsonschema.Object(jsonschema.Object(doc, "properties"), "collections")
		if _, ok := jsonschema.Object(collections, "properties")["media"]; ok {
			t.Fatalf("media collection entry should be removed")
		}
		if diff := cmp.Diff([]any{"posts"}, collections["required"]); diff != "" {
			t.Fatalf("required mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing shapes", func(t *testing.T) {
		if got := Prune(nil, PruneOptions{DropMedia: true}); got != nil {
			t.Fatalf("expected nil document to pass through")
		}
		doc := map[string]any{"properties": "oops", "definitions": []any{}}
		Prune(doc, PruneOptions{DropMedia: true})
		if diff := cmp.Diff(map[string]any{"properties": "oops", "definitions": []any{}}, doc); diff != "" {
			t.Fatalf("malformed document changed (-want +got):\n%s", diff)
		}
	})
}

func TestSynthesizeOpaqueDefinitions(t *testing.T) {
	annotator := annotate.NewAnnotator(annotate.Options{})
	stub := func(typ string) map[string]any {
		return map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"goJSONSchema": map[string]any{
				"imports":  []any{annotate.DefaultAdapterImport},
				"nillable": false,
				"type":     typ,
			},
		}
	}

	t.Run("replaces existing", func(t *testing.T) {
		doc := map[string]any{
			"definitions": map[string]any{
				"settings": map[string]any{
					"type":       "object",
					"properties": map[string]any{"siteName": map[string]any{"type": "string"}},
				},
				"forms":            map[string]any{"type": "object"},
				"form-submissions": map[string]any{"type": "object"},
				"posts":            map[string]any{"type": "object"},
			},
		}

		SynthesizeOpaqueDefinitions(doc, annotator)

		want := map[string]any{
			"settings":         stub("payload.Settings"),
			"forms":            stub("payload.Form"),
			"form-submissions": stub("payload.FormSubmission"),
			"posts":            map[string]any{"type": "object"},
		}
		if diff := cmp.Diff(want, doc["definitions"]); diff != "" {
			t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("never creates", func(t *testing.T) {
		doc := map[string]any{"definitions": map[string]any{"posts": map[string]any{}}}
		SynthesizeOpaqueDefinitions(doc, annotator)
		if diff := cmp.Diff(map[string]any{"posts": map[string]any{}}, doc["definitions"]); diff != "" {
			t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
		}

		empty := map[string]any{}
		SynthesizeOpaqueDefinitions(empty, annotator)
		if len(empty) != 0 {
			t.Fatalf("definitions must not be created: %v", empty)
		}
		SynthesizeOpaqueDefinitions(nil, annotator)
	})
}

func TestResolveRelationshipUnions(t *testing.T) {
	doc := map[string]any{
		"definitions": map[string]any{
			"posts": map[string]any{
				"properties": map[string]any{
					"author": map[string]any{
						"oneOf":   unionOf("users")["oneOf"],
						"payload": relationshipMeta("author", "users", false),
					},
					"tags": map[string]any{
						"type":    "array",
						"items":   unionOf("tags"),
						"payload": relationshipMeta("tags", "tags", true),
					},
					"links": map[string]any{
						"oneOf": []any{},
						"payload": map[string]any{
							"name":       "links",
							"type":       "relationship",
							"hasMany":    false,
							"relationTo": []any{"posts", "pages"},
						},
					},
					"title": map[string]any{
						"type":    "string",
						"payload": map[string]any{"name": "title", "type": "text"},
					},
				},
			},
		},
	}

	ResolveRelationshipUnions(doc)
	props := definitionProps(doc, "posts")

	wantAuthor := map[string]any{
		"$ref":    "#/definitions/users",
		"payload": relationshipMeta("author", "users", false),
	}
	if diff := cmp.Diff(wantAuthor, props["author"]); diff != "" {
		t.Fatalf("author mismatch (-want +got):\n%s", diff)
	}

	wantTags := map[string]any{
		"type":    "array",
		"items":   map[string]any{"$ref": "#/definitions/tags"},
		"payload": relationshipMeta("tags", "tags", true),
	}
	if diff := cmp.Diff(wantTags, props["tags"]); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}

	if _, ok := props["links"].(map[string]any)["oneOf"]; !ok {
		t.Fatalf("polymorphic relationship must be left untouched")
	}
	if diff := cmp.Diff("string", props["title"].(map[string]any)["type"]); diff != "" {
		t.Fatalf("non relationship changed (-want +got):\n%s", diff)
	}
}

func TestResolveRelationshipUnions_KeepsGoOverride(t *testing.T) {
	override := map[string]any{"imports": []any{"x"}, "nillable": true, "type": "payload.Form"}
	doc := map[string]any{
		"definitions": map[string]any{
			"pages": map[string]any{
				"properties": map[string]any{
					"form": map[string]any{
						"goJSONSchema": override,
						"payload":      relationshipMeta("form", "forms", false),
					},
				},
			},
		},
	}

	ResolveRelationshipUnions(doc)

	want := map[string]any{
		"$ref":         "#/definitions/forms",
		"goJSONSchema": override,
		"payload":      relationshipMeta("form", "forms", false),
	}
	if diff := cmp.Diff(want, definitionProps(doc, "pages")["form"]); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

// Block within array within group: blocks are emitted as their own
// definitions, so relationships inside them are reached through the outer
// definition loop; the group and array wrappers are descended by the
// pass-local recursion; the blocks union itself is not.
func TestResolveRelationshipUnions_NestedWrappers(t *testing.T) {
	doc := map[string]any{
		"definitions": map[string]any{
			"pages": map[string]any{
				"properties": map[string]any{
					"meta": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"sections": map[string]any{
								"type": "array",
								"items": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"owner": map[string]any{
											"oneOf":   unionOf("users")["oneOf"],
											"payload": relationshipMeta("owner", "users", false),
										},
										"content": map[string]any{
											"type": "array",
											"items": map[string]any{
												"oneOf": []any{
													map[string]any{
														"type": "object",
														"properties": map[string]any{
															"inline": map[string]any{
																"oneOf":   unionOf("users")["oneOf"],
																"payload": relationshipMeta("inline", "users", false),
															},
														},
													},
													map[string]any{"$ref": "#/definitions/hero"},
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
			"hero": map[string]any{
				"properties": map[string]any{
					"cta": map[string]any{
						"oneOf":   unionOf("pages")["oneOf"],
						"payload": relationshipMeta("cta", "pages", false),
					},
				},
			},
		},
	}

	ResolveRelationshipUnions(doc)

	meta := definitionProps(doc, "pages")["meta"].(map[string]any)
	sections := jsonschema.Object(meta, "properties")["sections"].(map[string]any)
	items := jsonschema.Object(sections, "items")
	owner := jsonschema.Object(items, "properties")["owner"]

	wantOwner := map[string]any{
		"$ref":    "#/definitions/users",
		"payload": relationshipMeta("owner", "users", false),
	}
	if diff := cmp.Diff(wantOwner, owner); diff != "" {
		t.Fatalf("owner mismatch (-want +got):\n%s", diff)
	}

	wantCTA := map[string]any{
		"$ref":    "#/definitions/pages",
		"payload": relationshipMeta("cta", "pages", false),
	}
	if diff := cmp.Diff(wantCTA, definitionProps(doc, "hero")["cta"]); diff != "" {
		t.Fatalf("block cta mismatch (-want +got):\n%s", diff)
	}

	content := jsonschema.Object(items, "properties")["content"].(map[string]any)
	variant := jsonschema.Object(content, "items")["oneOf"].([]any)[0].(map[string]any)
	inline := jsonschema.Object(variant, "properties")["inline"].(map[string]any)
	if _, ok := inline["oneOf"]; !ok {
		t.Fatalf("relationships inside inline union variants are not rewritten")
	}
}

func TestNormalizeDiscriminators(t *testing.T) {
	doc := map[string]any{
		"definitions": map[string]any{
			"hero": map[string]any{
				"properties": map[string]any{
					"blockType": map[string]any{"const": "hero"},
					"heading":   map[string]any{"const": "fixed"},
				},
			},
			"cta": map[string]any{
				"properties": map[string]any{
					"blockType": map[string]any{"type": "string", "enum": []any{"cta"}, "const": "cta"},
					"group": map[string]any{
						"properties": map[string]any{
							"blockType": map[string]any{"const": "nested"},
						},
					},
				},
			},
		},
	}

	NormalizeDiscriminators(doc)

	if diff := cmp.Diff(map[string]any{"type": "string"}, definitionProps(doc, "hero")["blockType"]); diff != "" {
		t.Fatalf("hero blockType mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"const": "fixed"}, definitionProps(doc, "hero")["heading"]); diff != "" {
		t.Fatalf("non discriminator changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"type": "string"}, definitionProps(doc, "cta")["blockType"]); diff != "" {
		t.Fatalf("cta blockType mismatch (-want +got):\n%s", diff)
	}

	nested := jsonschema.Object(definitionProps(doc, "cta")["group"].(map[string]any), "properties")["blockType"]
	if diff := cmp.Diff(map[string]any{"const": "nested"}, nested); diff != "" {
		t.Fatalf("nested discriminator should be left alone (-want +got):\n%s", diff)
	}
}

// The form relationship loses its $ref and gets nothing in its place.
func TestPatchFormRelationship_StripsRefWithoutReplacement(t *testing.T) {
	doc := map[string]any{
		"definitions": map[string]any{
			"pages": map[string]any{
				"properties": map[string]any{
					"form": map[string]any{
						"$ref":    "#/definitions/forms",
						"payload": relationshipMeta("form", "forms", false),
					},
					"author": map[string]any{
						"$ref":    "#/definitions/users",
						"payload": relationshipMeta("author", "users", false),
					},
					"formTitle": map[string]any{
						"$ref":    "#/definitions/forms",
						"payload": map[string]any{"name": "form", "type": "group"},
					},
				},
			},
		},
	}

	PatchFormRelationship(doc)
	props := definitionProps(doc, "pages")

	wantForm := map[string]any{"payload": relationshipMeta("form", "forms", false)}
	if diff := cmp.Diff(wantForm, props["form"]); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	if _, ok := props["author"].(map[string]any)["$ref"]; !ok {
		t.Fatalf("other relationships keep their $ref")
	}
	if _, ok := props["formTitle"].(map[string]any)["$ref"]; !ok {
		t.Fatalf("non relationship named form keeps its $ref")
	}
}

func TestPassesToleratePartialDocuments(t *testing.T) {
	docs := []map[string]any{
		nil,
		{},
		{"definitions": "nope"},
		{"definitions": map[string]any{"posts": "nope"}},
		{"definitions": map[string]any{"posts": map[string]any{"properties": []any{}}}},
		{"definitions": map[string]any{"posts": map[string]any{"properties": map[string]any{
			"author": map[string]any{"payload": "nope"},
			"tags":   map[string]any{"payload": map[string]any{"type": "relationship"}},
		}}}},
	}

	pipeline := New(annotate.Options{UseOpaqueMediaType: true})
	for idx, doc := range docs {
		before := jsonschema.Clone(doc)
		got := pipeline.Run(doc)
		if diff := cmp.Diff(before, got); diff != "" {
			t.Fatalf("doc %d changed (-want +got):\n%s", idx, diff)
		}
	}
}
