package worlddef

const schemaURL = "worlddef.schema.json"

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["features"],
  "properties": {
    "name": {"type": "string"},
    "features": {
      "type": "array",
      "items": {"$ref": "#/definitions/feature"}
    }
  },
  "definitions": {
    "band": {"type": "string", "enum": ["", "small", "medium", "large", "wide", "SMALL", "MEDIUM", "LARGE", "WIDE"]},
    "bound": {"type": "integer", "minimum": 0},
    "coord": {
      "type": "object",
      "required": ["q", "r"],
      "properties": {"q": {"type": "integer"}, "r": {"type": "integer"}},
      "additionalProperties": false
    },
    "position": {
      "type": "object",
      "required": ["direction"],
      "properties": {
        "direction": {"type": "string", "minLength": 1},
        "distance": {"$ref": "#/definitions/band"},
        "distance_from": {"$ref": "#/definitions/bound"},
        "distance_to": {"$ref": "#/definitions/bound"},
        "anchor": {"type": "string"},
        "priority": {"type": "integer", "minimum": 1, "maximum": 10}
      },
      "additionalProperties": false
    },
    "feature": {
      "type": "object",
      "required": ["type", "id"],
      "properties": {
        "type": {"type": "string", "enum": ["biome", "structure", "flow"]},
        "id": {"type": "string", "minLength": 1, "pattern": "^[^:]+$"},
        "name": {"type": "string"},
        "title": {"type": "string"},
        "shape": {"type": "string", "enum": ["circle", "line", "rectangle", "CIRCLE", "LINE", "RECTANGLE"]},
        "size": {"$ref": "#/definitions/band"},
        "size_from": {"$ref": "#/definitions/bound"},
        "size_to": {"$ref": "#/definitions/bound"},
        "tags": {
          "type": "array",
          "items": {"type": "string", "enum": ["land", "ocean", "water", "mountain", "LAND", "OCEAN", "WATER", "MOUNTAIN"]}
        },
        "positions": {"type": "array", "items": {"$ref": "#/definitions/position"}},
        "entry_points": {
          "type": "object",
          "additionalProperties": {"$ref": "#/definitions/coord"}
        },
        "kind": {"type": "string", "enum": ["river", "road", "wall", "RIVER", "ROAD", "WALL"]},
        "waypoints": {"type": "array", "items": {"type": "string", "minLength": 1}},
        "width": {"$ref": "#/definitions/band"},
        "width_from": {"$ref": "#/definitions/bound"},
        "width_to": {"$ref": "#/definitions/bound"},
        "level": {"type": "integer"},
        "depth": {"type": "integer", "minimum": 0},
        "merge_to": {"type": "string"}
      },
      "additionalProperties": false,
      "allOf": [
        {
          "if": {"properties": {"type": {"const": "flow"}}},
          "then": {"required": ["kind", "waypoints"]}
        }
      ]
    }
  }
}`
