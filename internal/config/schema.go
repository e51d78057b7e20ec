package config

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "solver":  {"type": "string", "enum": ["greedy", "random", "descent", "tabu", "annealing", "genetic", "swarm", "colony"]},
    "base":    {"type": "string", "enum": ["greedy", "random"]},
    "seed":    {"type": "integer"},
    "timeout": {"type": "string"},
    "greedy": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "priority": {"type": "string", "enum": ["SPT", "LPT", "SRPT", "LRPT", "EST_SPT", "EST_LPT", "EST_SRPT", "EST_LRPT"]}
      }
    },
    "descent": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "max_steps": {"type": "integer", "minimum": 0}
      }
    },
    "tabu": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "max_iterations":   {"type": "integer", "minimum": 1},
        "tabu_tenure":      {"type": "integer", "minimum": 1},
        "tabu_tenure_rand": {"type": "integer", "minimum": 0}
      }
    },
    "annealing": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "iterations":   {"type": "integer", "minimum": 1},
        "initial_temp": {"type": "number", "exclusiveMinimum": 0},
        "final_temp":   {"type": "number", "exclusiveMinimum": 0},
        "alpha":        {"type": "number", "exclusiveMinimum": 0, "exclusiveMaximum": 1}
      }
    },
    "genetic": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "population":      {"type": "integer", "minimum": 2},
        "generations":     {"type": "integer", "minimum": 1},
        "elite":           {"type": "integer", "minimum": 0},
        "tournament_size": {"type": "integer", "minimum": 1},
        "crossover_rate":  {"type": "number", "minimum": 0, "maximum": 1},
        "mutation_rate":   {"type": "number", "minimum": 0, "maximum": 1}
      }
    },
    "swarm": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "iterations":               {"type": "integer", "minimum": 0},
        "iterations_per_operation": {"type": "integer", "minimum": 0},
        "particles":                {"type": "integer", "minimum": 1},
        "w":                        {"type": "number", "minimum": 0},
        "c1":                       {"type": "number", "minimum": 0},
        "c2":                       {"type": "number", "minimum": 0},
        "vmax":                     {"type": "number", "minimum": 0},
        "pos_min":                  {"type": "number"},
        "pos_max":                  {"type": "number"}
      }
    },
    "colony": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "iterations":         {"type": "integer", "minimum": 0},
        "iterations_per_job": {"type": "integer", "minimum": 0},
        "ants":               {"type": "integer", "minimum": 1},
        "alpha":              {"type": "number", "minimum": 0},
        "beta":               {"type": "number", "minimum": 0},
        "rho":                {"type": "number", "exclusiveMinimum": 0, "exclusiveMaximum": 1},
        "q":                  {"type": "number", "exclusiveMinimum": 0},
        "tau0":               {"type": "number", "exclusiveMinimum": 0},
        "candidate_k":        {"type": "integer", "minimum": 0}
      }
    },
    "bench": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "runs":            {"type": "integer", "minimum": 1},
        "pairs":           {"type": "array", "items": {"type": "string", "pattern": "^[0-9]+x[0-9]+$"}},
        "instances":       {"type": "array", "items": {"type": "string"}},
        "instance_seed":   {"type": "integer"},
        "algorithms":      {"type": "array", "items": {"type": "string"}},
        "per_run_timeout": {"type": "string"},
        "out":             {"type": "string"}
      }
    }
  }
}`
