package generativeAI

const validationPrompt = `You are a travel agent who helps users plan trips.

The user's request is enclosed in four hashtags. Decide whether the request is reasonable
and achievable within the constraints it sets. A reasonable request names at least one
location and, where given, a duration, mode of transport and party size that fit together.
Any request involving potentially harmful activities is not reasonable.

Answer with JSON only, no commentary:
{"plan_is_valid": "yes"} or {"plan_is_valid": "no"}

####%s####`

const extractionPrompt = `You are a travel agent. Extract the trip parameters from the request
enclosed in four hashtags.

Return a single JSON object with exactly these keys:
- "location": comma separated list of places to visit (never a cuisine or a food)
- "origin": starting point, empty string if unknown
- "duration": number of days, 0 if unknown
- "no_of_people": party size, 0 if unknown
- "budget": one of "low", "medium", "high", empty string if unknown
- "mode_of_transport": one of "DRIVING", "WALKING", "BICYCLING", "TRANSIT", empty string if unknown
- "type_of_trip": e.g. "family", "couple", "friends"
- "cuisine": comma separated cuisines; infer the cuisine from foods (pizza is italian, sushi is japanese)
- "attraction": kind of attraction, e.g. "museums", "national parks", "historical places"
- "timings": daily travel window as "HH:MM-HH:MM" in 24h time, empty string if unknown
- "distance": maximum distance in kilometers between stops, 0 if unknown

Answer with JSON only.

####%s####`

const itineraryPrompt = `You are a travel agent arranging a %d day trip to %s for %d people
travelling by %s on a %s budget. Each day runs from %s to %s.

Here are the candidate places as JSON:
%s

Choose the places worth visiting and assign each one a day (1 to %d) and an arrival time
inside the daily window. Keep consecutive stops close to each other, put restaurants at meal
times, and respect each place's opening hours.

Answer with a JSON array only, one entry per chosen place, using the ids given above:
[{"id": "<place id>", "day": 1, "time": "HH:MM"}]`
